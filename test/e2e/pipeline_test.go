//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/parlay"
	"github.com/yourusername/prop-edge/internal/server"
	"github.com/yourusername/prop-edge/internal/service"
	"github.com/yourusername/prop-edge/test/helpers"
)

// TestFullPipeline walks raw payloads through normalization, consensus, EV
// ranking, parlay construction, and Monte Carlo simulation.
func TestFullPipeline(t *testing.T) {
	cfg := helpers.TestConfig()
	logger := helpers.QuietLogger()

	raws := []json.RawMessage{
		helpers.AggregatorEvent(t, "Nikola Jokic", "player_points", 25.5, []helpers.BookQuote{
			{Title: "DraftKings", OverOdds: -115, UnderOdds: -105},
			{Title: "FanDuel", OverOdds: 100, UnderOdds: -120},
			{Title: "BetMGM", OverOdds: -110, UnderOdds: -110},
		}),
		helpers.AggregatorEvent(t, "Jamal Murray", "player_assists", 6.5, []helpers.BookQuote{
			{Title: "DraftKings", OverOdds: -130, UnderOdds: -110},
			{Title: "FanDuel", OverOdds: -105, UnderOdds: -125},
		}),
	}

	analyzer := service.NewAnalyzer(cfg, logger)
	report, err := analyzer.Analyze(raws, "")
	require.NoError(t, err)

	assert.Equal(t, 5, report.Normalized)
	assert.Equal(t, 0, report.Dropped)
	require.Len(t, report.Opportunities, 2)

	// Ranked by EV descending.
	assert.GreaterOrEqual(t,
		report.Opportunities[0].Result.ExpectedValue,
		report.Opportunities[1].Result.ExpectedValue)

	legs := service.BuildLegs(report.Opportunities)
	require.Len(t, legs, 2)

	calc := parlay.NewCalculator()
	calculation, err := calc.CalculateFullParlay(legs)
	require.NoError(t, err)
	assert.Greater(t, calculation.CombinedProbability, 0.0)
	assert.Less(t, calculation.CombinedProbability, 1.0)

	sim, err := parlay.Simulate(context.Background(), legs, parlay.SimulationConfig{
		Trials:  cfg.Simulation.Trials,
		Workers: cfg.Simulation.Workers,
		Seed:    cfg.Simulation.Seed,
	})
	require.NoError(t, err)
	assert.Equal(t, cfg.Simulation.Trials, sim.Trials)
	assert.InDelta(t, calculation.CombinedProbability, sim.HitRate, 0.03)
}

// TestFullPipelineOverHTTP drives the same flow through the HTTP surface.
func TestFullPipelineOverHTTP(t *testing.T) {
	cfg := helpers.TestConfig()
	logger := helpers.QuietLogger()

	srv := server.NewServer(server.Config{
		ServiceName:    cfg.App.Name,
		MetricsEnabled: true,
		MetricsPath:    "/metrics",
		Logger:         logger,
		Analyzer:       service.NewAnalyzer(cfg, logger),
		Calculator:     parlay.NewCalculator(),
		Simulation: parlay.SimulationConfig{
			Trials:  cfg.Simulation.Trials,
			Workers: cfg.Simulation.Workers,
			Seed:    cfg.Simulation.Seed,
		},
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	raws := []json.RawMessage{
		helpers.AggregatorEvent(t, "Nikola Jokic", "player_points", 25.5, []helpers.BookQuote{
			{Title: "DraftKings", OverOdds: -115, UnderOdds: -105},
			{Title: "FanDuel", OverOdds: 100, UnderOdds: -120},
		}),
	}
	body, err := json.Marshal(raws)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/v1/analyze", "application/json", strings.NewReader(string(body)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report service.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	require.Len(t, report.Opportunities, 1)

	legsBody, err := json.Marshal([]models.ParlayLeg{
		{PlayerID: report.Opportunities[0].PlayerID, StatType: report.Opportunities[0].StatType,
			Probability: report.Opportunities[0].Result.TrueProbability},
	})
	require.NoError(t, err)

	resp, err = http.Post(ts.URL+"/v1/simulate", "application/json", strings.NewReader(string(legsBody)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
