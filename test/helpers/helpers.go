// Package helpers provides shared fixtures for cross-package tests.
package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/config"
)

// BookQuote is one sportsbook's two-sided price for a fixture event.
type BookQuote struct {
	Title     string
	OverOdds  int
	UnderOdds int
}

// TestConfig returns a configuration suitable for pipeline tests.
func TestConfig() *config.Config {
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
		Simulation: config.SimulationConfig{Trials: 10000, Workers: 2, Seed: 42},
	}
}

// QuietLogger returns a logger that discards output.
func QuietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// AggregatorEvent builds an aggregator-shaped raw payload quoting one
// player prop at every given book.
func AggregatorEvent(t *testing.T, player, statType string, line float64, quotes []BookQuote) json.RawMessage {
	t.Helper()

	type outcome struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Point       float64 `json:"point"`
	}
	type market struct {
		Key      string    `json:"key"`
		Outcomes []outcome `json:"outcomes"`
	}
	type bookmaker struct {
		Title   string   `json:"title"`
		Markets []market `json:"markets"`
	}

	var bookmakers []bookmaker
	for _, q := range quotes {
		bookmakers = append(bookmakers, bookmaker{
			Title: q.Title,
			Markets: []market{{
				Key: statType,
				Outcomes: []outcome{
					{Name: "Over", Description: player, Price: float64(q.OverOdds), Point: line},
					{Name: "Under", Description: player, Price: float64(q.UnderOdds), Point: line},
				},
			}},
		})
	}

	payload := map[string]interface{}{
		"sport_key":     "basketball_nba",
		"commence_time": "2026-01-15T00:10:00Z",
		"bookmakers":    bookmakers,
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err, fmt.Sprintf("marshaling fixture for %s", player))
	return data
}
