package normalizer

import (
	"encoding/json"
	"math"
	"time"

	"github.com/yourusername/prop-edge/internal/models"
)

// aggregatorPayload is the odds-aggregator shape: one event carrying every
// bookmaker's markets, outcome names "Over"/"Under", player in the outcome
// description, line in "point".
type aggregatorPayload struct {
	SportKey     string `json:"sport_key"`
	CommenceTime string `json:"commence_time"`
	Bookmakers   []struct {
		Title   string             `json:"title"`
		Markets []aggregatorMarket `json:"markets"`
	} `json:"bookmakers"`
}

type aggregatorMarket struct {
	Key      string `json:"key"`
	Outcomes []struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Point       float64 `json:"point"`
	} `json:"outcomes"`
}

type aggregatorAdapter struct{}

func (aggregatorAdapter) Format() Format { return FormatAggregator }

// Parse expands one aggregator event into a prop per (bookmaker, market,
// player, line) that has both sides quoted. The sportsbook argument is
// ignored: this shape names each book inline.
func (aggregatorAdapter) Parse(raw json.RawMessage, _ string) ([]models.NormalizedProp, bool) {
	var payload aggregatorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	if payload.SportKey == "" || len(payload.Bookmakers) == 0 {
		return nil, false
	}

	ts, err := time.Parse(time.RFC3339, payload.CommenceTime)
	if err != nil {
		return nil, false
	}

	var props []models.NormalizedProp
	for _, book := range payload.Bookmakers {
		for _, market := range book.Markets {
			props = append(props, pairMarketOutcomes(market, book.Title, payload.SportKey, ts)...)
		}
	}
	return props, true
}

// pairMarketOutcomes locates Over/Under pairs within one market by player
// description and line.
func pairMarketOutcomes(market aggregatorMarket, book, sport string, ts time.Time) []models.NormalizedProp {
	type sideKey struct {
		player string
		line   float64
	}
	overs := make(map[sideKey]float64)
	unders := make(map[sideKey]float64)
	var order []sideKey

	for _, outcome := range market.Outcomes {
		if outcome.Description == "" {
			continue
		}
		key := sideKey{player: outcome.Description, line: outcome.Point}
		switch {
		case isOver(outcome.Name):
			if _, seen := overs[key]; !seen {
				overs[key] = outcome.Price
				order = append(order, key)
			}
		case isUnder(outcome.Name):
			unders[key] = outcome.Price
		}
	}

	var props []models.NormalizedProp
	for _, key := range order {
		under, ok := unders[key]
		if !ok {
			continue
		}
		over := overs[key]
		props = append(props, models.NormalizedProp{
			PlayerID:   key.player,
			PlayerName: key.player,
			Sport:      sport,
			StatType:   market.Key,
			Line:       key.line,
			OverOdds:   int(math.Round(over)),
			UnderOdds:  int(math.Round(under)),
			Sportsbook: book,
			Timestamp:  ts,
		})
	}
	return props
}
