package consensus

import "math"

// ConfidenceCap is the ceiling on any confidence score. Saturation is
// reached at five books.
const ConfidenceCap = 0.95

// ConfidenceFunc scores how much to trust a consensus built from n books.
type ConfidenceFunc func(sampleSize int) float64

// SaturatingConfidence returns min(0.95, 0.5 + 0.1*n). This is a monotone
// saturating heuristic for how many independent books agree, not a
// statistical estimator; it exists to rank results, not to bound error.
func SaturatingConfidence(sampleSize int) float64 {
	if sampleSize <= 0 {
		return 0
	}
	return math.Min(ConfidenceCap, 0.5+0.1*float64(sampleSize))
}
