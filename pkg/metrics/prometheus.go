// Package metrics provides Prometheus metrics for the passing network service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	constLabels    map[string]string
	registry       prometheus.Registerer

	// Network construction
	networksBuilt    prometheus.Counter
	buildErrors      *prometheus.CounterVec
	buildLatency     prometheus.Histogram
	networkNodes     prometheus.Histogram
	networkEdges     prometheus.Histogram
	passesPerNetwork prometheus.Histogram

	// Metric computation
	metricComputations *prometheus.CounterVec
	metricLatency      *prometheus.HistogramVec

	// Worker pools
	jobs       *prometheus.CounterVec
	jobLatency *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "passnet",
		subsystem:      "network",
		latencyBuckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for all collectors
	auto := promauto.With(m.registry)
	sizeBuckets := prometheus.LinearBuckets(2, 2, 15)

	m.networksBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "built_total",
		Help:        "Total number of passing networks built",
		ConstLabels: m.constLabels,
	})

	m.buildErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "build_errors_total",
		Help:        "Total number of failed analyses by reason",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.buildLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "build_latency_milliseconds",
		Help:        "Time to aggregate passes into a network",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	})

	m.networkNodes = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "nodes",
		Help:        "Players per built network",
		Buckets:     sizeBuckets,
		ConstLabels: m.constLabels,
	})

	m.networkEdges = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "edges",
		Help:        "Passing combinations per built network",
		Buckets:     prometheus.ExponentialBuckets(1, 2, 10),
		ConstLabels: m.constLabels,
	})

	m.passesPerNetwork = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "passes",
		Help:        "Completed passes aggregated per network",
		Buckets:     prometheus.ExponentialBuckets(8, 2, 10),
		ConstLabels: m.constLabels,
	})

	m.metricComputations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "metric_computations_total",
		Help:        "Node metrics computed by metric name",
		ConstLabels: m.constLabels,
	}, []string{"metric"})

	m.metricLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "metric_latency_milliseconds",
		Help:        "Time to compute a node metric",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, []string{"metric"})

	m.jobs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "worker",
		Name:        "jobs_total",
		Help:        "Jobs run by worker pools by status",
		ConstLabels: m.constLabels,
	}, []string{"pool", "status"})

	m.jobLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "worker",
		Name:        "job_latency_milliseconds",
		Help:        "Time to run one worker pool job",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, []string{"pool"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "errors_total",
		Help:        "HTTP errors by endpoint and error type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})
}

// RecordNetworkBuilt records a successful build with its size and latency.
func RecordNetworkBuilt(passes, nodes, edges int, latencyMs float64) {
	globalManager.networksBuilt.Inc()
	globalManager.passesPerNetwork.Observe(float64(passes))
	globalManager.networkNodes.Observe(float64(nodes))
	globalManager.networkEdges.Observe(float64(edges))
	globalManager.buildLatency.Observe(latencyMs)
}

// RecordBuildError increments the failed analysis counter for reason.
func RecordBuildError(reason string) {
	globalManager.buildErrors.WithLabelValues(reason).Inc()
}

// RecordMetricComputed records one node metric computation.
func RecordMetricComputed(metric string, latencyMs float64) {
	globalManager.metricComputations.WithLabelValues(metric).Inc()
	globalManager.metricLatency.WithLabelValues(metric).Observe(latencyMs)
}

// RecordJob records one finished worker pool job.
func RecordJob(pool, status string, latencyMs float64) {
	globalManager.jobs.WithLabelValues(pool, status).Inc()
	if status != "skipped" {
		globalManager.jobLatency.WithLabelValues(pool).Observe(latencyMs)
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
