// Package config provides configuration management for the prop-edge
// analysis tools.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment
// variables, expanding ${VAR_NAME} placeholders in the YAML file. A missing
// file is not an error: defaults and environment variables still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("PROP_EDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if configPath == "" {
		configPath = "config/config.yaml"
	}
	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "prop-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("analysis.min_quotes_for_consensus", 2)
	v.SetDefault("analysis.stake", 100.0)
	v.SetDefault("analysis.strong_edge_percent", 5.0)
	v.SetDefault("analysis.moderate_edge_percent", 2.0)
	v.SetDefault("analysis.consensus_cache_ttl_seconds", 60)

	v.SetDefault("simulation.trials", 10000)
	v.SetDefault("simulation.workers", 4)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}
