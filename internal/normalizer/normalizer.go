package normalizer

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/models"
)

// Normalizer adapts raw sportsbook payloads into canonical NormalizedProp
// records. It first tries the adapter for the hinted sportsbook, then falls
// back to structural auto-detection in a fixed priority order.
type Normalizer struct {
	adapters    []adapter
	bookFormats map[string]Format
	validate    *validator.Validate
	logger      *logrus.Logger
}

// New creates a normalizer with the full adapter set. Detection order is
// fixed: aggregator, exchange, DFS.
func New(logger *logrus.Logger) *Normalizer {
	return &Normalizer{
		adapters:    []adapter{aggregatorAdapter{}, exchangeAdapter{}, dfsAdapter{}},
		bookFormats: bookFormats(),
		validate:    validator.New(),
		logger:      logger,
	}
}

// Normalize adapts a single raw record, returning nil when no adapter
// matches or a required field is absent. It never panics and never returns
// an error: a malformed record cannot be fixed by the caller, only skipped.
func (n *Normalizer) Normalize(raw json.RawMessage, sportsbookHint string) *models.NormalizedProp {
	props := n.NormalizeAll(raw, sportsbookHint)
	if len(props) == 0 {
		return nil
	}
	return &props[0]
}

// NormalizeAll adapts a single raw record into every prop it contains.
// Aggregator payloads expand to one prop per bookmaker and market; the
// other shapes yield at most a handful.
func (n *Normalizer) NormalizeAll(raw json.RawMessage, sportsbookHint string) []models.NormalizedProp {
	if len(raw) == 0 {
		return nil
	}

	for _, a := range n.orderedAdapters(sportsbookHint) {
		props, ok := a.Parse(raw, sportsbookHint)
		if !ok {
			continue
		}
		if n.logger != nil {
			n.logger.WithFields(logrus.Fields{
				"format": a.Format(),
				"props":  len(props),
			}).Debug("Normalized record")
		}
		return props
	}

	if n.logger != nil {
		n.logger.Debug("No adapter matched record")
	}
	return nil
}

// NormalizeBatch normalizes every record independently, drops failures, and
// filters the survivors through Validate as a second line of defense. One
// bad record never fails the batch.
func (n *Normalizer) NormalizeBatch(raws []json.RawMessage, sportsbookHint string) []models.NormalizedProp {
	var props []models.NormalizedProp
	dropped := 0
	for _, raw := range raws {
		normalized := n.NormalizeAll(raw, sportsbookHint)
		if len(normalized) == 0 {
			dropped++
			continue
		}
		for i := range normalized {
			if n.Validate(&normalized[i]) {
				props = append(props, normalized[i])
			} else {
				dropped++
			}
		}
	}
	if dropped > 0 && n.logger != nil {
		n.logger.WithField("dropped", dropped).Debug("Dropped records during batch normalization")
	}
	return props
}

// Validate checks every NormalizedProp invariant: non-empty string fields,
// finite line, nonzero odds, valid timestamp.
func (n *Normalizer) Validate(prop *models.NormalizedProp) bool {
	if prop == nil {
		return false
	}
	if !prop.IsFinite() || prop.Timestamp.IsZero() {
		return false
	}
	return n.validate.Struct(prop) == nil
}

// orderedAdapters puts the hinted sportsbook's adapter first, then the rest
// in fixed priority order.
func (n *Normalizer) orderedAdapters(hint string) []adapter {
	format, known := n.bookFormats[canonicalBook(hint)]
	if !known {
		return n.adapters
	}
	ordered := make([]adapter, 0, len(n.adapters))
	for _, a := range n.adapters {
		if a.Format() == format {
			ordered = append(ordered, a)
		}
	}
	for _, a := range n.adapters {
		if a.Format() != format {
			ordered = append(ordered, a)
		}
	}
	return ordered
}
