// Package models defines the immutable value types flowing through the
// prop analysis pipeline. Every type here is produced by a pure computation
// from its inputs and is never mutated after construction.
package models

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// NormalizedProp is the canonical record shape every sportsbook payload is
// adapted into. Odds are American (signed, never zero).
type NormalizedProp struct {
	PlayerID   string    `json:"player_id" validate:"required"`
	PlayerName string    `json:"player_name" validate:"required"`
	Sport      string    `json:"sport" validate:"required"`
	StatType   string    `json:"stat_type" validate:"required"`
	Line       float64   `json:"line"`
	OverOdds   int       `json:"over_odds" validate:"ne=0"`
	UnderOdds  int       `json:"under_odds" validate:"ne=0"`
	Sportsbook string    `json:"sportsbook" validate:"required"`
	Timestamp  time.Time `json:"timestamp" validate:"required"`
}

// OddsQuote is one sportsbook's NormalizedProp within a prop group. Quotes
// sharing a group key are assumed to reference the same underlying event.
type OddsQuote = NormalizedProp

// GroupKey returns the grouping key (player, stat type, line) used to
// collect quotes that price the same underlying event.
func (p *NormalizedProp) GroupKey() string {
	return fmt.Sprintf("%s|%s|%s", p.PlayerID, p.StatType, strconv.FormatFloat(p.Line, 'f', -1, 64))
}

// IsFinite reports whether the numeric fields hold real values.
func (p *NormalizedProp) IsFinite() bool {
	return !math.IsNaN(p.Line) && !math.IsInf(p.Line, 0)
}
