// Package parlay combines independent leg probabilities, grades correlation
// risk among legs, derives fair odds and warnings for a parlay, and runs a
// Monte Carlo simulation for variance estimation.
package parlay

import (
	"fmt"
	"math"

	"github.com/yourusername/prop-edge/internal/models"
)

// Warning thresholds. The product-of-probabilities formula assumes
// independent legs, so anything that undermines that assumption or makes
// the parlay a lottery ticket gets surfaced rather than silently accepted.
const (
	MaxRecommendedLegs  = 5
	LowHitRateThreshold = 0.05
	WeakLegThreshold    = 0.3
)

// Calculator assembles full parlay assessments.
type Calculator struct {
	Detector *RiskDetector
}

// NewCalculator creates a calculator with the default correlation table.
func NewCalculator() *Calculator {
	return &Calculator{Detector: NewRiskDetector()}
}

// CombinedProbability multiplies leg probabilities under the independence
// assumption. This is always an overestimate when legs are correlated;
// callers must pair it with DetectCorrelationRisk.
func CombinedProbability(legs []models.ParlayLeg) (float64, error) {
	if len(legs) == 0 {
		return 0, models.ErrNoLegs
	}
	combined := 1.0
	for i, leg := range legs {
		if leg.Probability <= 0 || leg.Probability >= 1 || math.IsNaN(leg.Probability) {
			return 0, fmt.Errorf("leg %d: %w", i, models.ErrInvalidLegProbability)
		}
		combined *= leg.Probability
	}
	return combined, nil
}

// FairOdds converts a probability back to American odds, the inverse of
// the single-leg conversion.
func FairOdds(probability float64) (int, error) {
	if probability <= 0 || probability >= 1 || math.IsNaN(probability) {
		return 0, models.ErrProbabilityOutOfRange
	}
	decimal := 1.0 / probability
	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// CalculateFullParlay composes combined probability, fair odds, correlation
// risk, and the warnings list for a leg set.
func (c *Calculator) CalculateFullParlay(legs []models.ParlayLeg) (models.ParlayCalculation, error) {
	combined, err := CombinedProbability(legs)
	if err != nil {
		return models.ParlayCalculation{}, err
	}
	fair, err := FairOdds(combined)
	if err != nil {
		return models.ParlayCalculation{}, err
	}
	risk := c.Detector.Detect(legs)

	return models.ParlayCalculation{
		CombinedProbability: combined,
		FairOdds:            fair,
		CorrelationRisk:     risk,
		Warnings:            buildWarnings(legs, combined, risk),
	}, nil
}

func buildWarnings(legs []models.ParlayLeg, combined float64, risk models.CorrelationRisk) []string {
	var warnings []string

	if riskAtLeast(risk.Level, models.RiskHigh) {
		warnings = append(warnings, fmt.Sprintf(
			"%s correlation risk: %s (combined probability overestimates the true hit rate)",
			risk.Level, risk.Description))
	}
	if len(legs) >= MaxRecommendedLegs {
		warnings = append(warnings, fmt.Sprintf(
			"parlay has %d legs; hit rates degrade quickly past %d legs", len(legs), MaxRecommendedLegs-1))
	}
	if combined < LowHitRateThreshold {
		warnings = append(warnings, fmt.Sprintf(
			"combined probability %.1f%% is below %.0f%%; expect long losing streaks",
			combined*100, LowHitRateThreshold*100))
	}
	for i, leg := range legs {
		if leg.Probability < WeakLegThreshold {
			warnings = append(warnings, fmt.Sprintf(
				"leg %d (%s %s) has probability %.1f%%, below the %.0f%% floor",
				i, leg.PlayerID, leg.StatType, leg.Probability*100, WeakLegThreshold*100))
		}
	}

	return warnings
}

var riskOrder = map[models.RiskLevel]int{
	models.RiskNone:   0,
	models.RiskLow:    1,
	models.RiskMedium: 2,
	models.RiskHigh:   3,
	models.RiskSevere: 4,
}

func riskAtLeast(level, floor models.RiskLevel) bool {
	return riskOrder[level] >= riskOrder[floor]
}
