// Package metrics provides Prometheus metrics for the scored scoring service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the scored service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core Business Metrics - request outcomes and scoring latency
	scoreRequests  *prometheus.CounterVec
	scoreLatency   prometheus.Histogram
	predictLatency prometheus.Histogram

	// Request Quality Metrics
	validationErrors  *prometheus.CounterVec
	overloadRejects   prometheus.Counter
	predictTimeouts   prometheus.Counter
	modelFailures     prometheus.Counter

	// Dispatcher Health Metrics
	inFlight        prometheus.Gauge
	gateCapacity    prometheus.Gauge
	gateUtilization prometheus.Gauge

	// Model Metrics
	modelReady        prometheus.Gauge
	modelHealthChecks prometheus.Counter

	// Repository Metrics - recent-outcome store
	recentStoreSize     prometheus.Gauge
	recentStoreCapacity prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - detailed error tracking
	errorRateByComponent *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scored",
		subsystem:        "scoring",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics
	m.scoreRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "requests_total",
			Help:      "Total score requests by terminal outcome",
		},
		[]string{"outcome"},
	)

	m.scoreLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "request_latency_milliseconds",
		Help:      "Histogram of end-to-end score latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.predictLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predict_latency_milliseconds",
		Help:      "Histogram of model predict latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Request Quality Metrics
	m.validationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_errors_total",
			Help:      "Total rejected payloads by validation reason",
		},
		[]string{"reason"},
	)

	m.overloadRejects = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "overload_rejects_total",
		Help:      "Total requests rejected by the admission gate",
	})

	m.predictTimeouts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predict_timeouts_total",
		Help:      "Total requests that exceeded the predict deadline",
	})

	m.modelFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_failures_total",
		Help:      "Total predict calls that returned an adapter error",
	})

	// Dispatcher Health Metrics
	m.inFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "in_flight_requests",
		Help:      "Number of requests currently admitted by the gate",
	})

	m.gateCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gate_capacity",
		Help:      "Configured admission gate capacity",
	})

	m.gateUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gate_utilization",
		Help:      "Admission gate utilization ratio (0.0 to 1.0)",
	})

	// Model Metrics
	m.modelReady = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_ready",
		Help:      "Whether the loaded model reports healthy (1) or not (0)",
	})

	m.modelHealthChecks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_health_checks_total",
		Help:      "Total canary health checks performed",
	})

	// Repository Metrics
	m.recentStoreSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recent_store_size",
		Help:      "Number of outcomes currently retained in the recent store",
	})

	m.recentStoreCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recent_store_capacity",
		Help:      "Configured capacity of the recent-outcome store",
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by endpoint, method, and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "Histogram of HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Enhanced Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total errors by component and reason",
		},
		[]string{"component", "reason"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Core business metric helpers.

// RecordScoreOutcome increments the request counter for a terminal outcome.
func RecordScoreOutcome(outcome string) {
	globalManager.scoreRequests.WithLabelValues(outcome).Inc()
}

// RecordScoreLatency records the end-to-end latency of a score request.
func RecordScoreLatency(latencyMs float64) {
	globalManager.scoreLatency.Observe(latencyMs)
}

// RecordPredictLatency records the latency of a model predict call.
func RecordPredictLatency(latencyMs float64) {
	globalManager.predictLatency.Observe(latencyMs)
}

// RecordValidationError increments the validation error counter for a reason.
func RecordValidationError(reason string) {
	globalManager.validationErrors.WithLabelValues(reason).Inc()
}

// RecordOverloadReject increments the admission gate rejection counter.
func RecordOverloadReject() {
	globalManager.overloadRejects.Inc()
}

// RecordPredictTimeout increments the predict timeout counter.
func RecordPredictTimeout() {
	globalManager.predictTimeouts.Inc()
}

// RecordModelFailure increments the model failure counter.
func RecordModelFailure() {
	globalManager.modelFailures.Inc()
}

// Dispatcher health metric helpers.

// UpdateInFlight sets the current number of admitted requests.
func UpdateInFlight(n int) {
	globalManager.inFlight.Set(float64(n))
}

// UpdateGateCapacity sets the configured gate capacity.
func UpdateGateCapacity(capacity int) {
	globalManager.gateCapacity.Set(float64(capacity))
}

// UpdateGateUtilization sets the gate utilization ratio.
func UpdateGateUtilization(utilization float64) {
	globalManager.gateUtilization.Set(utilization)
}

// Model metric helpers.

// UpdateModelReady sets the model readiness gauge.
func UpdateModelReady(ready bool) {
	if ready {
		globalManager.modelReady.Set(1)
		return
	}
	globalManager.modelReady.Set(0)
}

// RecordModelHealthCheck increments the canary health check counter.
func RecordModelHealthCheck() {
	globalManager.modelHealthChecks.Inc()
}

// Repository metric helpers.

// UpdateRecentStoreSize sets the current recent-store size.
func UpdateRecentStoreSize(size int) {
	globalManager.recentStoreSize.Set(float64(size))
}

// UpdateRecentStoreCapacity sets the recent-store capacity.
func UpdateRecentStoreCapacity(capacity int) {
	globalManager.recentStoreCapacity.Set(float64(capacity))
}

// HTTP metric helpers.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records the duration of an HTTP request.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// Error metric helpers.

// RecordErrorByComponent increments the error counter for a component/reason pair.
func RecordErrorByComponent(component, reason string) {
	globalManager.errorRateByComponent.WithLabelValues(component, reason).Inc()
}

// System metric helpers.

// UpdateSystemMemoryUsage sets the current allocated memory.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records a GC pause observation.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by the service.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
