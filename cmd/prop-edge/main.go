// Package main provides the prop-edge CLI: a thin harness over the
// analysis library for running it against JSON payload files.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/parlay"
	"github.com/yourusername/prop-edge/internal/server"
	"github.com/yourusername/prop-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	inputFile  string
	bookHint   string
	servePort  string
	appLog     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "-", "Input JSON file ('-' for stdin)")

	analyzeCmd.Flags().StringVarP(&bookHint, "book", "b", "", "Sportsbook hint for adapter selection")
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8080", "HTTP listen port")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(parlayCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
}

var rootCmd = &cobra.Command{
	Use:     "prop-edge",
	Short:   "Player-prop EV and parlay analysis",
	Long:    `Normalizes sportsbook odds payloads, removes vig, builds a market consensus, and ranks per-book expected value; optionally evaluates parlays over the results.`,
	Version: fmt.Sprintf("%s (%s, %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel)
		metrics.InitRegistry()
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank per-book EV across raw odds payloads",
	RunE: func(cmd *cobra.Command, args []string) error {
		var raws []json.RawMessage
		if err := readInput(&raws); err != nil {
			return err
		}

		analyzer := service.NewAnalyzer(cfg, appLog)
		report, err := analyzer.Analyze(raws, bookHint)
		if err != nil {
			return err
		}
		return writeOutput(report)
	},
}

var parlayCmd = &cobra.Command{
	Use:   "parlay",
	Short: "Evaluate a parlay leg set",
	RunE: func(cmd *cobra.Command, args []string) error {
		legs, err := readLegs()
		if err != nil {
			return err
		}

		calc := parlay.NewCalculator()
		for stat, correlated := range cfg.Parlay.ExtraCorrelatedPairs {
			calc.Detector.Pairs[stat] = append(calc.Detector.Pairs[stat], correlated...)
		}

		result, err := calc.CalculateFullParlay(legs)
		if err != nil {
			return err
		}
		return writeOutput(result)
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Monte Carlo simulation of parlay outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		legs, err := readLegs()
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := parlay.Simulate(context.Background(), legs, parlay.SimulationConfig{
			Trials:  cfg.Simulation.Trials,
			Workers: cfg.Simulation.Workers,
			Seed:    cfg.Simulation.Seed,
		})
		if err != nil {
			return err
		}
		metrics.RecordSimulationDuration(time.Since(start).Seconds())
		return writeOutput(result)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis pipeline as an HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		calc := parlay.NewCalculator()
		for stat, correlated := range cfg.Parlay.ExtraCorrelatedPairs {
			calc.Detector.Pairs[stat] = append(calc.Detector.Pairs[stat], correlated...)
		}

		srv := server.NewServer(server.Config{
			ServiceName:    cfg.App.Name,
			Version:        Version,
			Commit:         GitCommit,
			Port:           servePort,
			MetricsEnabled: cfg.Metrics.Enabled,
			MetricsPath:    cfg.Metrics.Path,
			Logger:         appLog,
			Analyzer:       service.NewAnalyzer(cfg, appLog),
			Calculator:     calc,
			Simulation: parlay.SimulationConfig{
				Trials:  cfg.Simulation.Trials,
				Workers: cfg.Simulation.Workers,
				Seed:    cfg.Simulation.Seed,
			},
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		return srv.Shutdown()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func readLegs() ([]models.ParlayLeg, error) {
	var legs []models.ParlayLeg
	if err := readInput(&legs); err != nil {
		return nil, err
	}
	return legs, nil
}

func readInput(v interface{}) error {
	var data []byte
	var err error
	if inputFile == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(inputFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse input JSON: %w", err)
	}
	return nil
}

func writeOutput(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
