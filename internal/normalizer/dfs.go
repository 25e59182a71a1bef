package normalizer

import (
	"encoding/json"
	"math"
	"time"

	"github.com/yourusername/prop-edge/internal/models"
)

// dfsPayload is the DFS-style shape: one player/stat/line record with
// numeric odds attached directly.
type dfsPayload struct {
	Player struct {
		ID   json.Number `json:"id"`
		Name string      `json:"name"`
	} `json:"player"`
	League    string  `json:"league"`
	StatType  string  `json:"stat_type"`
	LineScore float64 `json:"line_score"`
	Odds      struct {
		Over  float64 `json:"over"`
		Under float64 `json:"under"`
	} `json:"odds"`
}

type dfsAdapter struct{}

func (dfsAdapter) Format() Format { return FormatDFS }

func (dfsAdapter) Parse(raw json.RawMessage, sportsbook string) ([]models.NormalizedProp, bool) {
	var payload dfsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	// player.id is the shape's required discriminant; a record without it
	// is structurally invalid and must be dropped, not repaired.
	if payload.Player.ID.String() == "" || payload.Player.Name == "" || payload.StatType == "" {
		return nil, false
	}

	if sportsbook == "" {
		sportsbook = string(FormatDFS)
	}

	prop := models.NormalizedProp{
		PlayerID:   payload.Player.ID.String(),
		PlayerName: payload.Player.Name,
		Sport:      payload.League,
		StatType:   payload.StatType,
		Line:       payload.LineScore,
		OverOdds:   int(math.Round(payload.Odds.Over)),
		UnderOdds:  int(math.Round(payload.Odds.Under)),
		Sportsbook: sportsbook,
		Timestamp:  time.Now().UTC(),
	}
	return []models.NormalizedProp{prop}, true
}
