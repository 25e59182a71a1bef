// Package normalizer adapts heterogeneous raw sportsbook payloads into the
// canonical NormalizedProp record. Each supported payload shape has its own
// structural adapter; dispatch is by an explicit format discriminant with
// structural auto-detection as the fallback path.
package normalizer

import (
	"encoding/json"
	"strings"

	"github.com/yourusername/prop-edge/internal/models"
)

// Format identifies one of the closed set of supported payload shapes.
type Format string

const (
	FormatAggregator Format = "aggregator"
	FormatExchange   Format = "exchange"
	FormatDFS        Format = "dfs"
)

// adapter converts one payload shape into normalized props. Parse reports
// ok=false when the payload does not structurally match the adapter's
// shape; a matching payload with unusable contents yields an empty slice.
type adapter interface {
	Format() Format
	Parse(raw json.RawMessage, sportsbook string) ([]models.NormalizedProp, bool)
}

// bookFormats maps known sportsbook identifiers to their payload format so
// a hint can pick the right adapter without probing. Unknown books fall
// through to structural auto-detection.
func bookFormats() map[string]Format {
	return map[string]Format{
		"draftkings": FormatAggregator,
		"fanduel":    FormatAggregator,
		"betmgm":     FormatAggregator,
		"caesars":    FormatAggregator,
		"oddsapi":    FormatAggregator,
		"novig":      FormatExchange,
		"prophetx":   FormatExchange,
		"sporttrade": FormatExchange,
		"prizepicks": FormatDFS,
		"underdog":   FormatDFS,
	}
}

func canonicalBook(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// isOver and isUnder match outcome labels across shapes ("Over", "over
// 25.5", "OVER").
func isOver(label string) bool {
	return strings.Contains(strings.ToLower(label), "over") && !isUnder(label)
}

func isUnder(label string) bool {
	return strings.Contains(strings.ToLower(label), "under")
}
