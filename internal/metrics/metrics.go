// Package metrics provides Prometheus metrics for the scoring engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds every Prometheus metric the engine records.
type Manager struct {
	namespace string
	subsystem string
	registry  prometheus.Registerer

	scoresComputed       prometheus.Counter
	scoreComputeDuration prometheus.Histogram
	recomputeRuns        *prometheus.CounterVec
	validationVerdicts   *prometheus.CounterVec
	catalogCacheHits     prometheus.Counter
	catalogCacheMisses   prometheus.Counter
	httpRequests         *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithRegistry registers the metrics on a specific registry.
func WithRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// Global manager on a custom registry, keeping default Go metrics out.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "ethoscore",
		subsystem: "engine",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scoresComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_computed_total",
		Help:      "Total number of Score records produced by the aggregator",
	})

	m.scoreComputeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_compute_duration_milliseconds",
		Help:      "Histogram of single score computation duration in milliseconds",
		Buckets:   prometheus.DefBuckets,
	})

	m.recomputeRuns = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recompute_runs_total",
			Help:      "Total number of recompute runs by outcome",
		},
		[]string{"outcome"},
	)

	m.validationVerdicts = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_verdicts_total",
			Help:      "Total number of validation gate verdicts by status",
		},
		[]string{"status"},
	)

	m.catalogCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_cache_hits_total",
		Help:      "Total number of catalog reads served from Redis",
	})

	m.catalogCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_cache_misses_total",
		Help:      "Total number of catalog reads that fell through to MongoDB",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method", "status_code"},
	)
}

// RecordScoreComputed increments the computed scores counter.
func RecordScoreComputed() {
	globalManager.scoresComputed.Inc()
}

// RecordScoreComputeDuration records one score computation duration.
func RecordScoreComputeDuration(latencyMs float64) {
	globalManager.scoreComputeDuration.Observe(latencyMs)
}

// RecordRecomputeRun counts a recompute run with its outcome.
func RecordRecomputeRun(outcome string) {
	globalManager.recomputeRuns.WithLabelValues(outcome).Inc()
}

// RecordValidationVerdict counts a validation gate verdict.
func RecordValidationVerdict(status string) {
	globalManager.validationVerdicts.WithLabelValues(status).Inc()
}

// RecordCatalogCacheHit counts a catalog read served from cache.
func RecordCatalogCacheHit() {
	globalManager.catalogCacheHits.Inc()
}

// RecordCatalogCacheMiss counts a catalog read that hit the database.
func RecordCatalogCacheMiss() {
	globalManager.catalogCacheMisses.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(route, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(route, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(route, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(route, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
