package service

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "prop-edge",
			Environment: "development",
			LogLevel:    "debug",
		},
		Analysis: config.AnalysisConfig{
			MinQuotesForConsensus: 2,
			Stake:                 100,
			StrongEdgePercent:     5.0,
			ModerateEdgePercent:   2.0,
			ConsensusCacheTTL:     60,
		},
		Simulation: config.SimulationConfig{Trials: 1000, Workers: 1},
	}
}

func newTestAnalyzer() *Analyzer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewAnalyzer(testConfig(), logger)
}

// One event quoted by three books: DraftKings -115/-105, FanDuel +100/-120,
// BetMGM -110/-110.
const threeBookEvent = `{
	"sport_key": "basketball_nba",
	"commence_time": "2026-01-15T00:10:00Z",
	"bookmakers": [
		{
			"title": "DraftKings",
			"markets": [{"key": "player_points", "outcomes": [
				{"name": "Over", "description": "Nikola Jokic", "price": -115, "point": 25.5},
				{"name": "Under", "description": "Nikola Jokic", "price": -105, "point": 25.5}
			]}]
		},
		{
			"title": "FanDuel",
			"markets": [{"key": "player_points", "outcomes": [
				{"name": "Over", "description": "Nikola Jokic", "price": 100, "point": 25.5},
				{"name": "Under", "description": "Nikola Jokic", "price": -120, "point": 25.5}
			]}]
		},
		{
			"title": "BetMGM",
			"markets": [{"key": "player_points", "outcomes": [
				{"name": "Over", "description": "Nikola Jokic", "price": -110, "point": 25.5},
				{"name": "Under", "description": "Nikola Jokic", "price": -110, "point": 25.5}
			]}]
		}
	]
}`

func TestAnalyzeEndToEnd(t *testing.T) {
	analyzer := newTestAnalyzer()

	report, err := analyzer.Analyze([]json.RawMessage{json.RawMessage(threeBookEvent)}, "")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Normalized)
	assert.Equal(t, 0, report.Dropped)
	assert.Equal(t, 0, report.SkippedGroups)
	assert.False(t, report.GeneratedAt.IsZero())
	require.Len(t, report.Opportunities, 1)

	op := report.Opportunities[0]
	assert.Equal(t, "Nikola Jokic", op.PlayerName)
	assert.Equal(t, "player_points", op.StatType)
	assert.Equal(t, 25.5, op.Line)

	// In a vigged market every entry is negative EV; the best available is
	// FanDuel's Over at +100, about -0.73% per unit staked.
	assert.Equal(t, "FanDuel", op.Sportsbook)
	assert.Equal(t, models.SideOver, op.Side)
	assert.Equal(t, 100, op.OfferedOdds)
	assert.InDelta(t, -0.73, op.Result.ExpectedValue, 0.01)
	assert.Equal(t, models.RatingLow, op.Result.Rating)
	assert.Zero(t, op.KellyFraction)

	assert.InDelta(t, 0.4964, op.Consensus.OverProbability, 0.0001)
	assert.InDelta(t, 0.5036, op.Consensus.UnderProbability, 0.0001)
	assert.Equal(t, 3, op.Consensus.SampleSize)
	assert.InDelta(t, 0.8, op.Consensus.Confidence, 1e-9)

	assert.Len(t, op.BookResults, 3)
	assert.Len(t, op.Quotes, 3)
}

func TestAnalyzeSkipsThinGroups(t *testing.T) {
	analyzer := newTestAnalyzer()

	singleBook := json.RawMessage(`{
		"player": {"id": 9982, "name": "Nikola Jokic"},
		"league": "NBA",
		"stat_type": "Points",
		"line_score": 25.5,
		"odds": {"over": -119, "under": -119}
	}`)

	report, err := analyzer.Analyze([]json.RawMessage{singleBook}, "prizepicks")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Normalized)
	assert.Equal(t, 1, report.SkippedGroups)
	assert.Empty(t, report.Opportunities)
}

func TestAnalyzeCountsDroppedRecords(t *testing.T) {
	analyzer := newTestAnalyzer()

	raws := []json.RawMessage{
		json.RawMessage(threeBookEvent),
		json.RawMessage(`{"garbage": true}`),
	}

	report, err := analyzer.Analyze(raws, "")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Normalized)
	assert.Equal(t, 1, report.Dropped)
	require.Len(t, report.Opportunities, 1)
}

func TestAnalyzeIsRepeatable(t *testing.T) {
	analyzer := newTestAnalyzer()
	raws := []json.RawMessage{json.RawMessage(threeBookEvent)}

	first, err := analyzer.Analyze(raws, "")
	require.NoError(t, err)
	second, err := analyzer.Analyze(raws, "")
	require.NoError(t, err)

	// The second run hits the consensus memoization cache; results must be
	// identical either way.
	require.Len(t, second.Opportunities, 1)
	assert.Equal(t, first.Opportunities[0].Consensus, second.Opportunities[0].Consensus)
	assert.Equal(t, first.Opportunities[0].Result, second.Opportunities[0].Result)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAnalyzeRanksOpportunitiesByEV(t *testing.T) {
	analyzer := newTestAnalyzer()

	twoEvents := json.RawMessage(`{
		"sport_key": "basketball_nba",
		"commence_time": "2026-01-15T00:10:00Z",
		"bookmakers": [
			{
				"title": "DraftKings",
				"markets": [{"key": "player_points", "outcomes": [
					{"name": "Over", "description": "Nikola Jokic", "price": -115, "point": 25.5},
					{"name": "Under", "description": "Nikola Jokic", "price": -105, "point": 25.5},
					{"name": "Over", "description": "Jamal Murray", "price": -130, "point": 6.5},
					{"name": "Under", "description": "Jamal Murray", "price": -110, "point": 6.5}
				]}]
			},
			{
				"title": "FanDuel",
				"markets": [{"key": "player_points", "outcomes": [
					{"name": "Over", "description": "Nikola Jokic", "price": 100, "point": 25.5},
					{"name": "Under", "description": "Nikola Jokic", "price": -120, "point": 25.5},
					{"name": "Over", "description": "Jamal Murray", "price": -105, "point": 6.5},
					{"name": "Under", "description": "Jamal Murray", "price": -125, "point": 6.5}
				]}]
			}
		]
	}`)

	report, err := analyzer.Analyze([]json.RawMessage{twoEvents}, "")
	require.NoError(t, err)
	require.Len(t, report.Opportunities, 2)

	assert.GreaterOrEqual(t,
		report.Opportunities[0].Result.ExpectedValue,
		report.Opportunities[1].Result.ExpectedValue)
}

func TestGroupQuotes(t *testing.T) {
	props := []models.NormalizedProp{
		{PlayerID: "jokic", StatType: "points", Line: 25.5, Sportsbook: "DraftKings"},
		{PlayerID: "jokic", StatType: "points", Line: 25.5, Sportsbook: "FanDuel"},
		{PlayerID: "jokic", StatType: "points", Line: 26.5, Sportsbook: "BetMGM"},
		{PlayerID: "murray", StatType: "points", Line: 19.5, Sportsbook: "DraftKings"},
	}

	groups := GroupQuotes(props)
	require.Len(t, groups, 3)
	assert.Len(t, groups[props[0].GroupKey()], 2)
	assert.Len(t, groups[props[2].GroupKey()], 1)
	assert.Len(t, groups[props[3].GroupKey()], 1)
}

func TestBuildLegs(t *testing.T) {
	ops := []Opportunity{
		{PlayerID: "jokic", StatType: "points", Result: models.EVResult{TrueProbability: 0.52}},
		{PlayerID: "murray", StatType: "assists", Result: models.EVResult{TrueProbability: 0.61}},
	}

	legs := BuildLegs(ops)
	require.Len(t, legs, 2)
	assert.Equal(t, models.ParlayLeg{PlayerID: "jokic", StatType: "points", Probability: 0.52}, legs[0])
	assert.Equal(t, models.ParlayLeg{PlayerID: "murray", StatType: "assists", Probability: 0.61}, legs[1])
}
