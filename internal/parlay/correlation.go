package parlay

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/prop-edge/internal/models"
)

// CorrelatedPairs maps a canonical stat type to the stat types it is known
// to correlate with. Lookups are symmetric: a pair matches if either
// direction is listed.
type CorrelatedPairs map[string][]string

// DefaultCorrelatedPairs covers aggregate stats co-occurring with their
// components and the common cross-stat couplings. Extend via configuration
// rather than code.
func DefaultCorrelatedPairs() CorrelatedPairs {
	return CorrelatedPairs{
		"pra":                 {"points", "rebounds", "assists"},
		"points":              {"threes", "field goals"},
		"passing yards":       {"touchdowns", "passing touchdowns", "completions"},
		"rushing yards":       {"rushing attempts"},
		"receiving yards":     {"receptions"},
		"shots on goal":       {"goals"},
		"strikeouts":          {"outs recorded"},
	}
}

// RiskDetector grades correlation risk among parlay legs. The heuristics
// are deliberately simple, monotone rules, not a statistical model.
type RiskDetector struct {
	Pairs CorrelatedPairs
}

// NewRiskDetector creates a detector with the default correlated-pair table.
func NewRiskDetector() *RiskDetector {
	return &RiskDetector{Pairs: DefaultCorrelatedPairs()}
}

// Detect evaluates legs against the risk rules in precedence order, first
// match wins:
//
//	Severe — two legs share a player (same-player stat correlations are
//	         strong and badly undercounted by the independence assumption)
//	High   — two or more legs share a game
//	Medium — two or more legs share a team
//	Low    — two legs' stat types form a known-correlated pair
//	None   — otherwise
func (d *RiskDetector) Detect(legs []models.ParlayLeg) models.CorrelationRisk {
	if len(legs) < 2 {
		return models.CorrelationRisk{Level: models.RiskNone, Description: "no correlated legs detected"}
	}

	if affected := sharedField(legs, func(l models.ParlayLeg) string { return l.PlayerID }); affected != nil {
		return models.CorrelationRisk{
			Level:        models.RiskSevere,
			Description:  "multiple legs reference the same player",
			AffectedLegs: affected,
		}
	}
	if affected := sharedField(legs, func(l models.ParlayLeg) string { return l.GameID }); affected != nil {
		return models.CorrelationRisk{
			Level:        models.RiskHigh,
			Description:  "multiple legs come from the same game",
			AffectedLegs: affected,
		}
	}
	if affected := sharedField(legs, func(l models.ParlayLeg) string { return l.Team }); affected != nil {
		return models.CorrelationRisk{
			Level:        models.RiskMedium,
			Description:  "multiple legs come from the same team",
			AffectedLegs: affected,
		}
	}
	if i, j, ok := d.correlatedStatPair(legs); ok {
		return models.CorrelationRisk{
			Level:        models.RiskLow,
			Description:  fmt.Sprintf("stat types %q and %q are known to correlate", legs[i].StatType, legs[j].StatType),
			AffectedLegs: []int{i, j},
		}
	}

	return models.CorrelationRisk{Level: models.RiskNone, Description: "no correlated legs detected"}
}

// Correlated reports whether two stat types form a known-correlated pair.
func (d *RiskDetector) Correlated(a, b string) bool {
	ca, cb := canonicalStat(a), canonicalStat(b)
	return listed(d.Pairs[ca], cb) || listed(d.Pairs[cb], ca)
}

func (d *RiskDetector) correlatedStatPair(legs []models.ParlayLeg) (int, int, bool) {
	for i := 0; i < len(legs); i++ {
		for j := i + 1; j < len(legs); j++ {
			if d.Correlated(legs[i].StatType, legs[j].StatType) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// sharedField returns the indexes of all legs whose (non-empty) field value
// appears on more than one leg, or nil when every value is unique.
func sharedField(legs []models.ParlayLeg, field func(models.ParlayLeg) string) []int {
	byValue := make(map[string][]int)
	for i, leg := range legs {
		v := field(leg)
		if v == "" {
			continue
		}
		byValue[v] = append(byValue[v], i)
	}

	var affected []int
	for _, indexes := range byValue {
		if len(indexes) > 1 {
			affected = append(affected, indexes...)
		}
	}
	if len(affected) == 0 {
		return nil
	}
	sort.Ints(affected)
	return affected
}

func canonicalStat(stat string) string {
	return strings.ToLower(strings.TrimSpace(stat))
}

func listed(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
