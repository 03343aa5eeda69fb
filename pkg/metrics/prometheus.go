// Package metrics provides Prometheus metrics for the rentals service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the rentals service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Pricing
	chargesComputed   *prometheus.CounterVec
	unknownCategories *prometheus.CounterVec

	// Statements
	statementsRendered      prometheus.Counter
	statementErrors         *prometheus.CounterVec
	statementRenderDuration prometheus.Histogram
	statementRentals        prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rentals",
		subsystem:        "billing",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.chargesComputed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "charges_computed_total",
			Help:        "Total number of rental charges computed by category",
			ConstLabels: m.constLabels,
		},
		[]string{"category"},
	)

	m.unknownCategories = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "unknown_category_total",
			Help:        "Total number of charges that fell back to the zero rule (catalog data quality)",
			ConstLabels: m.constLabels,
		},
		[]string{"category"},
	)

	m.statementsRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "statements_rendered_total",
		Help:        "Total number of statements rendered successfully",
		ConstLabels: m.constLabels,
	})

	m.statementErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "statement_errors_total",
			Help:        "Total number of aborted statements by error kind",
			ConstLabels: m.constLabels,
		},
		[]string{"kind"},
	)

	m.statementRenderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "statement_render_duration_milliseconds",
		Help:        "Histogram of statement build and format time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.statementRentals = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "statement_rentals",
		Help:        "Number of rentals per rendered statement",
		Buckets:     []float64{1, 2, 5, 10, 25, 50, 100},
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordChargeComputed increments the charges counter for a category.
func RecordChargeComputed(category string) {
	globalManager.chargesComputed.WithLabelValues(category).Inc()
}

// RecordUnknownCategory increments the fallback counter for an unrecognised code.
func RecordUnknownCategory(category string) {
	globalManager.unknownCategories.WithLabelValues(category).Inc()
}

// RecordStatementRendered increments the rendered statements counter.
func RecordStatementRendered() {
	globalManager.statementsRendered.Inc()
}

// RecordStatementError increments the aborted statements counter for kind.
func RecordStatementError(kind string) {
	globalManager.statementErrors.WithLabelValues(kind).Inc()
}

// RecordStatementRenderDuration records render time in milliseconds.
func RecordStatementRenderDuration(durationMs float64) {
	globalManager.statementRenderDuration.Observe(durationMs)
}

// RecordStatementRentals records how many rentals a statement carried.
func RecordStatementRentals(count int) {
	globalManager.statementRentals.Observe(float64(count))
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
