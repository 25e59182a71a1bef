package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "prop-edge", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.App.LogLevel)

	assert.Equal(t, 2, cfg.Analysis.MinQuotesForConsensus)
	assert.Equal(t, 100.0, cfg.Analysis.Stake)
	assert.Equal(t, 5.0, cfg.Analysis.StrongEdgePercent)
	assert.Equal(t, 2.0, cfg.Analysis.ModerateEdgePercent)
	assert.Equal(t, time.Minute, cfg.Analysis.CacheTTL())

	assert.Equal(t, 10000, cfg.Simulation.Trials)
	assert.Equal(t, 4, cfg.Simulation.Workers)

	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	require.NoError(t, Validate(cfg))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  name: prop-edge
  environment: production
  log_level: warn
analysis:
  min_quotes_for_consensus: 3
  stake: 50
  strong_edge_percent: 6.0
  moderate_edge_percent: 3.0
simulation:
  trials: 50000
  workers: 8
  seed: 42
parlay:
  extra_correlated_pairs:
    goals:
      - assists
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 3, cfg.Analysis.MinQuotesForConsensus)
	assert.Equal(t, 50.0, cfg.Analysis.Stake)
	assert.Equal(t, 50000, cfg.Simulation.Trials)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, []string{"assists"}, cfg.Parlay.ExtraCorrelatedPairs["goals"])

	require.NoError(t, Validate(cfg))
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  log_level: ${TEST_LOG_LEVEL}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.App.LogLevel)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"bad environment", func(cfg *Config) { cfg.App.Environment = "prod" }},
		{"bad log level", func(cfg *Config) { cfg.App.LogLevel = "verbose" }},
		{"zero stake", func(cfg *Config) { cfg.Analysis.Stake = 0 }},
		{"zero min quotes", func(cfg *Config) { cfg.Analysis.MinQuotesForConsensus = 0 }},
		{"strong at moderate", func(cfg *Config) {
			cfg.Analysis.StrongEdgePercent = 2.0
			cfg.Analysis.ModerateEdgePercent = 2.0
		}},
		{"strong below moderate", func(cfg *Config) {
			cfg.Analysis.StrongEdgePercent = 1.0
			cfg.Analysis.ModerateEdgePercent = 2.0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}
