// Package server provides the long-running HTTP mode: analysis endpoints
// plus health probes and the Prometheus scrape path.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/parlay"
	"github.com/yourusername/prop-edge/internal/service"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Config holds the configuration for the analysis server.
type Config struct {
	ServiceName    string
	Version        string
	Commit         string
	Port           string
	MetricsEnabled bool
	MetricsPath    string
	Logger         *logrus.Logger
	Analyzer       *service.Analyzer
	Calculator     *parlay.Calculator
	Simulation     parlay.SimulationConfig
}

// Server exposes the analysis pipeline over HTTP alongside health probes
// and the metrics scrape endpoint.
type Server struct {
	serviceName string
	version     string
	commit      string
	port        string
	metricsPath string
	server      *http.Server
	logger      *logrus.Logger
	analyzer    *service.Analyzer
	calculator  *parlay.Calculator
	simulation  parlay.SimulationConfig
	mu          sync.RWMutex
	ready       bool
}

// NewServer creates a new analysis server.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == "" {
		port = os.Getenv("SERVER_PORT")
	}
	if port == "" {
		port = "8080"
	}

	metricsPath := ""
	if cfg.MetricsEnabled {
		metricsPath = cfg.MetricsPath
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
	}

	return &Server{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		commit:      cfg.Commit,
		port:        port,
		metricsPath: metricsPath,
		logger:      cfg.Logger,
		analyzer:    cfg.Analyzer,
		calculator:  cfg.Calculator,
		simulation:  cfg.Simulation,
		ready:       false,
	}
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Handler builds the full route table. Exposed separately from Start so
// tests can drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)
	mux.HandleFunc("/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/v1/parlay", s.handleParlay)
	mux.HandleFunc("/v1/simulate", s.handleSimulate)
	if s.metricsPath != "" {
		mux.Handle(s.metricsPath, metrics.Handler())
	}
	return mux
}

// Start starts the analysis server in the background.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         ":" + s.port,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"port":    s.port,
				"service": s.serviceName,
			}).Info("Analysis server starting")
		}

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.WithError(err).Error("Analysis server error")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	s.SetReady(true)
	return nil
}

// Shutdown gracefully shuts down the analysis server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	if s.logger != nil {
		s.logger.Info("Analysis server shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// handleHealth handles the /health endpoint - basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.version,
		Commit:    s.commit,
	})
}

// handleLive handles the /live endpoint - kubernetes liveness probe.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: s.serviceName})
}

// handleReady handles the /ready endpoint.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := http.StatusOK
	response := ReadyResponse{Status: "ok", Service: s.serviceName, Checks: checks}

	if s.IsReady() {
		checks["service"] = "ok"
	} else {
		checks["service"] = "not_ready"
		response.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, response)
}

// handleAnalyze runs the full pipeline over a JSON array of raw payloads.
// The sportsbook hint comes from the "book" query parameter.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var raws []json.RawMessage
	if !decodeBody(w, r, &raws) {
		return
	}

	report, err := s.analyzer.Analyze(raws, r.URL.Query().Get("book"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleParlay evaluates a parlay leg set.
func (s *Server) handleParlay(w http.ResponseWriter, r *http.Request) {
	var legs []models.ParlayLeg
	if !decodeBody(w, r, &legs) {
		return
	}

	result, err := s.calculator.CalculateFullParlay(legs)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSimulate runs a Monte Carlo simulation over a parlay leg set.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var legs []models.ParlayLeg
	if !decodeBody(w, r, &legs) {
		return
	}

	start := time.Now()
	result, err := parlay.Simulate(r.Context(), legs, s.simulation)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	metrics.RecordSimulationDuration(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, result)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
