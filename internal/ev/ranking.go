package ev

import (
	"sort"

	"github.com/yourusername/prop-edge/internal/models"
)

// QuoteEval is one sportsbook's best side within a prop group, scored
// against the group consensus. Quote fields are copied by value so the
// result holds no reference back to the group it came from.
type QuoteEval struct {
	Sportsbook  string          `json:"sportsbook"`
	Side        models.Side     `json:"side"`
	OfferedOdds int             `json:"offered_odds"`
	Result      models.EVResult `json:"result"`
	Confidence  float64         `json:"confidence"`
}

// EvaluateGroup scores every quote in a prop group against the consensus.
// For each quote both the Over side (consensus over probability) and the
// Under side (consensus under probability) are evaluated, and the side
// with the higher EV becomes that quote's entry. Entries are ranked by EV
// descending, ties broken by higher confidence, then lexicographically by
// sportsbook name for determinism.
func (e *Engine) EvaluateGroup(cons models.ConsensusResult, quotes []models.OddsQuote) ([]QuoteEval, error) {
	if len(quotes) == 0 {
		return nil, models.ErrEmptyQuoteGroup
	}

	evals := make([]QuoteEval, 0, len(quotes))
	for _, q := range quotes {
		over, err := e.CalculateEV(cons.OverProbability, q.OverOdds)
		if err != nil {
			return nil, err
		}
		under, err := e.CalculateEV(cons.UnderProbability, q.UnderOdds)
		if err != nil {
			return nil, err
		}

		best := QuoteEval{
			Sportsbook:  q.Sportsbook,
			Side:        models.SideOver,
			OfferedOdds: q.OverOdds,
			Result:      over,
			Confidence:  cons.Confidence,
		}
		if under.ExpectedValue > over.ExpectedValue {
			best.Side = models.SideUnder
			best.OfferedOdds = q.UnderOdds
			best.Result = under
		}
		evals = append(evals, best)
	}

	SortEvals(evals)
	return evals, nil
}

// SortEvals orders evaluations by EV descending, then confidence
// descending, then sportsbook ascending.
func SortEvals(evals []QuoteEval) {
	sort.Slice(evals, func(i, j int) bool {
		if evals[i].Result.ExpectedValue != evals[j].Result.ExpectedValue {
			return evals[i].Result.ExpectedValue > evals[j].Result.ExpectedValue
		}
		if evals[i].Confidence != evals[j].Confidence {
			return evals[i].Confidence > evals[j].Confidence
		}
		return evals[i].Sportsbook < evals[j].Sportsbook
	})
}
