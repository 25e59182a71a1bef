// Package config provides configuration management for the prop-edge
// analysis tools.
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Analysis   AnalysisConfig   `mapstructure:"analysis" validate:"required"`
	Parlay     ParlayConfig     `mapstructure:"parlay"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// AnalysisConfig tunes the consensus and EV engines.
type AnalysisConfig struct {
	// MinQuotesForConsensus is the named threshold for how many books a
	// prop group needs before its consensus is considered meaningful.
	MinQuotesForConsensus int     `mapstructure:"min_quotes_for_consensus" validate:"required,gte=1"`
	Stake                 float64 `mapstructure:"stake" validate:"required,gt=0"`
	StrongEdgePercent     float64 `mapstructure:"strong_edge_percent" validate:"required,gt=0"`
	ModerateEdgePercent   float64 `mapstructure:"moderate_edge_percent" validate:"required,gt=0"`
	ConsensusCacheTTL     int     `mapstructure:"consensus_cache_ttl_seconds" validate:"gte=0"`
}

// ParlayConfig extends the static correlated-stat table without code
// changes.
type ParlayConfig struct {
	ExtraCorrelatedPairs map[string][]string `mapstructure:"extra_correlated_pairs"`
}

// SimulationConfig tunes the Monte Carlo simulator.
type SimulationConfig struct {
	Trials  int   `mapstructure:"trials" validate:"required,gt=0"`
	Workers int   `mapstructure:"workers" validate:"required,gte=1"`
	Seed    int64 `mapstructure:"seed"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// CacheTTL returns the consensus cache TTL as a duration.
func (c *AnalysisConfig) CacheTTL() time.Duration {
	return time.Duration(c.ConsensusCacheTTL) * time.Second
}
