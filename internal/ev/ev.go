// Package ev scores offered odds against a market-implied true probability:
// expected value, edge percentage, a qualitative rating, and Kelly sizing.
package ev

import (
	"math"

	"github.com/yourusername/prop-edge/internal/consensus"
	"github.com/yourusername/prop-edge/internal/models"
)

// Default engine parameters, overridable per Engine instance.
const (
	DefaultStake        = 100.0
	DefaultStrongEdge   = 5.0
	DefaultModerateEdge = 2.0
)

// Engine computes EV results for (true probability, offered odds) pairs.
type Engine struct {
	// Stake is the notional wager EV is computed against. Results are
	// normalized back to the stake, so EV reads as a percentage.
	Stake float64
	// StrongEdge and ModerateEdge are the rating cutoffs in edge percent.
	StrongEdge   float64
	ModerateEdge float64
}

// NewEngine creates an EV engine with default stake and rating thresholds.
func NewEngine() *Engine {
	return &Engine{
		Stake:        DefaultStake,
		StrongEdge:   DefaultStrongEdge,
		ModerateEdge: DefaultModerateEdge,
	}
}

// DecimalOdds converts American odds to decimal (European) odds.
func DecimalOdds(american int) (float64, error) {
	if american == 0 {
		return 0, models.ErrZeroOdds
	}
	if american > 0 {
		return float64(american)/100.0 + 1.0, nil
	}
	return 100.0/float64(-american) + 1.0, nil
}

// CalculateEV computes the expected value of staking at offeredOdds when
// the true probability of winning is trueProbability.
//
// EV = p*winAmount - (1-p)*stake, normalized to the stake so the value is
// a percentage of the amount risked. Edge is the proportional advantage of
// the true probability over the book's implied probability.
func (e *Engine) CalculateEV(trueProbability float64, offeredOdds int) (models.EVResult, error) {
	if trueProbability <= 0 || trueProbability >= 1 || math.IsNaN(trueProbability) {
		return models.EVResult{}, models.ErrProbabilityOutOfRange
	}
	dec, err := DecimalOdds(offeredOdds)
	if err != nil {
		return models.EVResult{}, err
	}
	implied, err := consensus.AmericanToProbability(offeredOdds)
	if err != nil {
		return models.EVResult{}, err
	}

	stake := e.Stake
	if stake <= 0 {
		stake = DefaultStake
	}

	payout := stake * dec
	winAmount := payout - stake
	ev := trueProbability*winAmount - (1.0-trueProbability)*stake
	edgePercent := (trueProbability/implied - 1.0) * 100.0

	return models.EVResult{
		TrueProbability: trueProbability,
		EdgePercent:     edgePercent,
		ExpectedValue:   ev / stake * 100.0,
		Rating:          e.Rate(edgePercent),
	}, nil
}

// Rate buckets an edge percentage into a qualitative rating.
func (e *Engine) Rate(edgePercent float64) models.Rating {
	switch {
	case edgePercent >= e.StrongEdge:
		return models.RatingStrong
	case edgePercent >= e.ModerateEdge:
		return models.RatingModerate
	default:
		return models.RatingLow
	}
}

// CalculateKelly returns the Kelly-criterion stake fraction (b*p - q)/b for
// the given true probability and offered odds, clamped at zero so it never
// recommends a negative stake.
func (e *Engine) CalculateKelly(trueProbability float64, offeredOdds int) (float64, error) {
	if trueProbability <= 0 || trueProbability >= 1 || math.IsNaN(trueProbability) {
		return 0, models.ErrProbabilityOutOfRange
	}
	dec, err := DecimalOdds(offeredOdds)
	if err != nil {
		return 0, err
	}
	b := dec - 1.0
	p := trueProbability
	q := 1.0 - p
	kelly := (b*p - q) / b
	return math.Max(0, kelly), nil
}
