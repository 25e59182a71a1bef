package normalizer

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/prop-edge/internal/models"
)

// exchangePayload is the exchange-style shape: one participant with offers
// whose odds and lines arrive as strings.
type exchangePayload struct {
	Participant struct {
		ParticipantID json.Number `json:"participantId"`
		Name          string      `json:"name"`
	} `json:"participant"`
	SubcategoryID json.Number `json:"subcategoryId"`
	Offers        []struct {
		Label    string `json:"label"`
		Outcomes []struct {
			Label        string `json:"label"`
			OddsAmerican string `json:"oddsAmerican"`
			Line         string `json:"line"`
		} `json:"outcomes"`
	} `json:"offers"`
}

type exchangeAdapter struct{}

func (exchangeAdapter) Format() Format { return FormatExchange }

// Parse emits one prop per offer that quotes both sides of the same line.
// The exchange shape carries no sport vocabulary; "unknown" is passed
// through rather than rejected so new markets keep flowing.
func (exchangeAdapter) Parse(raw json.RawMessage, sportsbook string) ([]models.NormalizedProp, bool) {
	var payload exchangePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	if payload.Participant.Name == "" || payload.Participant.ParticipantID.String() == "" || len(payload.Offers) == 0 {
		return nil, false
	}

	if sportsbook == "" {
		sportsbook = string(FormatExchange)
	}
	ts := time.Now().UTC()

	var props []models.NormalizedProp
	for _, offer := range payload.Offers {
		var (
			line                float64
			overOdds            int
			underOdds           int
			haveOver, haveUnder bool
		)
		for _, outcome := range offer.Outcomes {
			odds, ok := parseAmericanString(outcome.OddsAmerican)
			if !ok {
				continue
			}
			parsedLine, ok := parseLineString(outcome.Line)
			if !ok {
				continue
			}
			switch {
			case isOver(outcome.Label) && !haveOver:
				overOdds, line, haveOver = odds, parsedLine, true
			case isUnder(outcome.Label) && !haveUnder:
				underOdds, haveUnder = odds, true
			}
		}
		if !haveOver || !haveUnder {
			continue
		}
		props = append(props, models.NormalizedProp{
			PlayerID:   payload.Participant.ParticipantID.String(),
			PlayerName: payload.Participant.Name,
			Sport:      "unknown",
			StatType:   offer.Label,
			Line:       line,
			OverOdds:   overOdds,
			UnderOdds:  underOdds,
			Sportsbook: sportsbook,
			Timestamp:  ts,
		})
	}
	return props, true
}

// parseAmericanString parses string odds like "-115" or "+100". decimal
// handles the leading sign and rejects garbage without float surprises.
func parseAmericanString(s string) (int, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	odds := int(d.Round(0).IntPart())
	if odds == 0 {
		return 0, false
	}
	return odds, true
}

func parseLineString(s string) (float64, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}
