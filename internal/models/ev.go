package models

// Rating is a qualitative bucket for an edge percentage.
type Rating string

const (
	RatingStrong   Rating = "Strong"
	RatingModerate Rating = "Moderate"
	RatingLow      Rating = "Low"
)

// Side identifies which half of an over/under market a result refers to.
type Side string

const (
	SideOver  Side = "over"
	SideUnder Side = "under"
)

// EVResult is the expected value assessment of one (true probability,
// offered odds) pair. Values are normalized to the stake, so ExpectedValue
// reads as a percentage when the stake is 100.
type EVResult struct {
	TrueProbability float64 `json:"true_probability"`
	EdgePercent     float64 `json:"edge_percent"`
	ExpectedValue   float64 `json:"expected_value"`
	Rating          Rating  `json:"rating"`
}
