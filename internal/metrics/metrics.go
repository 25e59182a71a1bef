// Package metrics provides the centralized Prometheus registry for the
// prop analysis pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RecordsNormalizedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "records_normalized_total",
		Help:      "Total number of raw records normalized successfully",
	})
	RecordsDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "records_dropped_total",
		Help:      "Total number of raw records dropped during normalization",
	})
	GroupsAnalyzedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "groups_analyzed_total",
		Help:      "Total number of prop groups run through consensus and EV scoring",
	})
	GroupsSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "groups_skipped_total",
		Help:      "Total number of prop groups skipped for insufficient quotes",
	})
	OpportunitiesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "opportunities_total",
		Help:      "Total number of opportunities emitted, by rating",
	}, []string{"rating"})
	ConsensusCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "consensus_cache_hits_total",
		Help:      "Total number of consensus computations served from cache",
	})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prop_edge",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of full analysis runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prop_edge",
		Name:      "simulation_duration_seconds",
		Help:      "Duration of parlay Monte Carlo simulations in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(RecordsNormalizedTotal)
		registry.MustRegister(RecordsDroppedTotal)
		registry.MustRegister(GroupsAnalyzedTotal)
		registry.MustRegister(GroupsSkippedTotal)
		registry.MustRegister(OpportunitiesTotal)
		registry.MustRegister(ConsensusCacheHitsTotal)

		registry.MustRegister(AnalysisDuration)
		registry.MustRegister(SimulationDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordNormalized records successfully normalized records.
func RecordNormalized(count int) {
	RecordsNormalizedTotal.Add(float64(count))
}

// RecordDropped records records dropped during normalization.
func RecordDropped(count int) {
	RecordsDroppedTotal.Add(float64(count))
}

// RecordGroupAnalyzed records one analyzed prop group.
func RecordGroupAnalyzed() {
	GroupsAnalyzedTotal.Inc()
}

// RecordGroupSkipped records one skipped prop group.
func RecordGroupSkipped() {
	GroupsSkippedTotal.Inc()
}

// RecordOpportunity records one emitted opportunity by rating.
func RecordOpportunity(rating string) {
	OpportunitiesTotal.WithLabelValues(rating).Inc()
}

// RecordConsensusCacheHit records a consensus cache hit.
func RecordConsensusCacheHit() {
	ConsensusCacheHitsTotal.Inc()
}

// RecordAnalysisDuration records the duration of a full analysis run.
func RecordAnalysisDuration(durationSeconds float64) {
	AnalysisDuration.Observe(durationSeconds)
}

// RecordSimulationDuration records the duration of a Monte Carlo run.
func RecordSimulationDuration(durationSeconds float64) {
	SimulationDuration.Observe(durationSeconds)
}
