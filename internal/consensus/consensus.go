// Package consensus converts American odds to implied probabilities,
// strips the bookmaker vig, and averages de-vigged probabilities across
// books into a market consensus estimate of the true probability.
package consensus

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/models"
)

// DefaultMinQuotes is the minimum number of independent books required
// before a consensus is considered meaningful. A single book carries its
// own bias; two agreeing books is the smallest sample worth averaging.
// Callers that accept single-book estimates can configure an Engine with
// MinQuotes of 1.
const DefaultMinQuotes = 2

// Engine computes consensus probabilities for a prop group.
type Engine struct {
	// MinQuotes is the smallest group size ComputeConsensus accepts.
	MinQuotes int
	// Confidence scores how many independent books agree.
	Confidence ConfidenceFunc
	logger     *logrus.Logger
}

// NewEngine creates a consensus engine with the default minimum sample
// size and the saturating confidence heuristic.
func NewEngine(logger *logrus.Logger) *Engine {
	return &Engine{
		MinQuotes:  DefaultMinQuotes,
		Confidence: SaturatingConfidence,
		logger:     logger,
	}
}

// AmericanToProbability converts American odds to an implied probability.
// For positive odds: 100/(odds+100). For negative odds: |odds|/(|odds|+100).
// Zero odds are invalid.
func AmericanToProbability(odds int) (float64, error) {
	if odds == 0 {
		return 0, models.ErrZeroOdds
	}
	if odds > 0 {
		return 100.0 / (float64(odds) + 100.0), nil
	}
	abs := float64(-odds)
	return abs / (abs + 100.0), nil
}

// RemoveVig normalizes a two-way market's implied probabilities so they
// sum to exactly 1, and reports the overround as a percentage for
// diagnostics.
func RemoveVig(overImplied, underImplied float64) (fairOver, fairUnder, vigPercent float64, err error) {
	sum := overImplied + underImplied
	if sum == 0 {
		return 0, 0, 0, models.ErrZeroMarketSum
	}
	return overImplied / sum, underImplied / sum, (sum - 1.0) * 100.0, nil
}

// ComputeConsensus de-vigs every quote's over/under pair and arithmetic-
// means the de-vigged over probabilities across books (average of de-vigged
// lines, not odds-weighted). The under probability is derived symmetrically
// and therefore complements the over consensus exactly.
func (e *Engine) ComputeConsensus(quotes []models.OddsQuote) (models.ConsensusResult, error) {
	if len(quotes) == 0 {
		return models.ConsensusResult{}, models.ErrEmptyQuoteGroup
	}
	if len(quotes) < e.MinQuotes {
		return models.ConsensusResult{}, fmt.Errorf("%w: have %d, need %d", models.ErrInsufficientQuotes, len(quotes), e.MinQuotes)
	}

	var overSum, underSum, vigSum float64
	used := 0
	for _, q := range quotes {
		overImplied, err := AmericanToProbability(q.OverOdds)
		if err != nil {
			return models.ConsensusResult{}, fmt.Errorf("quote from %s: %w", q.Sportsbook, err)
		}
		underImplied, err := AmericanToProbability(q.UnderOdds)
		if err != nil {
			return models.ConsensusResult{}, fmt.Errorf("quote from %s: %w", q.Sportsbook, err)
		}
		fairOver, fairUnder, vig, err := RemoveVig(overImplied, underImplied)
		if err != nil {
			return models.ConsensusResult{}, fmt.Errorf("quote from %s: %w", q.Sportsbook, err)
		}
		overSum += fairOver
		underSum += fairUnder
		vigSum += vig
		used++
	}

	n := float64(used)
	result := models.ConsensusResult{
		OverProbability:  overSum / n,
		UnderProbability: underSum / n,
		Confidence:       e.Confidence(used),
		SampleSize:       used,
		VigPercent:       vigSum / n,
	}

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"sample_size": used,
			"over_prob":   result.OverProbability,
			"confidence":  result.Confidence,
		}).Debug("Computed consensus")
	}

	return result, nil
}
