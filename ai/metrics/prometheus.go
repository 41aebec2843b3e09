// Package metrics provides Prometheus metrics export for the response core.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter exports orchestrator metrics in Prometheus format.
type Exporter struct {
	registry *prometheus.Registry

	// Request metrics
	requestLatency *prometheus.HistogramVec
	requests       *prometheus.CounterVec

	// Stage metrics
	stageLatency *prometheus.HistogramVec

	// Analyzer metrics
	analyzerErrors *prometheus.CounterVec

	// Cache metrics
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// LLM token metrics
	llmTokens *prometheus.CounterVec
}

// Config configures the exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default exporter configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	}
}

// NewExporter creates a new Prometheus metrics exporter.
func NewExporter(cfg Config) *Exporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &Exporter{registry: registry}

	e.requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "attune",
			Subsystem: "orchestrator",
			Name:      "request_latency_seconds",
			Help:      "End-to-end request latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"status"},
	)

	e.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "orchestrator",
			Name:      "requests_total",
			Help:      "Total number of processed requests",
		},
		[]string{"status"},
	)

	e.stageLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "attune",
			Subsystem: "orchestrator",
			Name:      "stage_latency_seconds",
			Help:      "Analyzer stage latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"stage"},
	)

	e.analyzerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "orchestrator",
			Name:      "analyzer_errors_total",
			Help:      "Total number of isolated analyzer failures",
		},
		[]string{"analyzer", "error_type"},
	)

	e.cacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "orchestrator",
			Name:      "cache_hits_total",
			Help:      "Total number of response cache hits",
		},
	)

	e.cacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "orchestrator",
			Name:      "cache_misses_total",
			Help:      "Total number of response cache misses",
		},
	)

	e.llmTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "orchestrator",
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed per generation step",
		},
		[]string{"step"},
	)

	registry.MustRegister(
		e.requestLatency,
		e.requests,
		e.stageLatency,
		e.analyzerErrors,
		e.cacheHits,
		e.cacheMisses,
		e.llmTokens,
	)

	return e
}

// RecordRequest records one processed request with its outcome status
// (hit, ok, fallback).
func (e *Exporter) RecordRequest(status string, latency time.Duration) {
	e.requests.WithLabelValues(status).Inc()
	e.requestLatency.WithLabelValues(status).Observe(latency.Seconds())
}

// RecordStageLatency records one analyzer stage's duration.
func (e *Exporter) RecordStageLatency(stage string, latency time.Duration) {
	e.stageLatency.WithLabelValues(stage).Observe(latency.Seconds())
}

// RecordAnalyzerError records an isolated analyzer failure.
func (e *Exporter) RecordAnalyzerError(analyzer, errorType string) {
	e.analyzerErrors.WithLabelValues(analyzer, errorType).Inc()
}

// RecordCacheHit records a response cache hit.
func (e *Exporter) RecordCacheHit() {
	e.cacheHits.Inc()
}

// RecordCacheMiss records a response cache miss.
func (e *Exporter) RecordCacheMiss() {
	e.cacheMisses.Inc()
}

// RecordLLMTokens records token usage for a generation step.
func (e *Exporter) RecordLLMTokens(step string, count int) {
	e.llmTokens.WithLabelValues(step).Add(float64(count))
}

// Handler returns an HTTP handler for the metrics endpoint.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}
