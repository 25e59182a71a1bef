package models

// ConsensusResult holds the market-implied "true" probabilities for one
// prop group after vig removal and cross-book averaging.
//
// Invariants: OverProbability + UnderProbability == 1 within floating
// tolerance, and Confidence is a monotone non-decreasing function of
// SampleSize capped at 0.95.
type ConsensusResult struct {
	OverProbability  float64 `json:"over_probability"`
	UnderProbability float64 `json:"under_probability"`
	Confidence       float64 `json:"confidence"`
	SampleSize       int     `json:"sample_size"`
	// VigPercent is the mean overround across contributing books, kept
	// for diagnostics only.
	VigPercent float64 `json:"vig_percent"`
}
