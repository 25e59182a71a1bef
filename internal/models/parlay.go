package models

// ParlayLeg is one selection inside a parlay. GameID and Team are optional
// and only used for correlation detection.
type ParlayLeg struct {
	PlayerID    string  `json:"player_id" validate:"required"`
	StatType    string  `json:"stat_type" validate:"required"`
	Probability float64 `json:"probability" validate:"gt=0,lt=1"`
	GameID      string  `json:"game_id,omitempty"`
	Team        string  `json:"team,omitempty"`
}

// RiskLevel grades how badly the independence assumption undercounts the
// correlation among parlay legs.
type RiskLevel string

const (
	RiskNone   RiskLevel = "None"
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
	RiskSevere RiskLevel = "Severe"
)

// CorrelationRisk describes the strongest correlation found among a set of
// legs and which legs (by index) triggered it.
type CorrelationRisk struct {
	Level        RiskLevel `json:"level"`
	Description  string    `json:"description"`
	AffectedLegs []int     `json:"affected_legs,omitempty"`
}

// ParlayCalculation is the full assessment of a leg set: combined hit
// probability under the independence assumption, the fair American odds it
// implies, the detected correlation risk, and an ordered list of warnings.
type ParlayCalculation struct {
	CombinedProbability float64         `json:"combined_probability"`
	FairOdds            int             `json:"fair_odds"`
	CorrelationRisk     CorrelationRisk `json:"correlation_risk"`
	Warnings            []string        `json:"warnings"`
}

// SimulationResult summarizes a Monte Carlo run over a parlay's legs.
// Distribution[k] counts trials in which exactly k legs hit.
type SimulationResult struct {
	Trials       int     `json:"trials"`
	HitRate      float64 `json:"hit_rate"`
	AvgLegsHit   float64 `json:"avg_legs_hit"`
	Distribution []int   `json:"distribution"`
}
