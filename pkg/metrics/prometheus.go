// Package metrics provides Prometheus metrics for the porra scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Scoring runs
	runsTotal      *prometheus.CounterVec
	runDuration    prometheus.Histogram
	scoringLatency prometheus.Histogram
	participants   prometheus.Gauge
	catalogRows    prometheus.Gauge
	cellErrors     *prometheus.CounterVec
	topTotal       prometheus.Gauge

	// Feed
	feedFetches      *prometheus.CounterVec
	feedFetchLatency prometheus.Histogram
	feedSource       *prometheus.GaugeVec

	// Snapshots
	snapshotSaves  prometheus.Counter
	snapshotErrors *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

// defaultLatencyBuckets are in milliseconds.
var defaultLatencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500} //nolint:gochecknoglobals // read-only

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Configure rebuilds the global collectors on a fresh registry. It must run
// at startup, before GetRegistry is served or anything is recorded.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	globalManager = NewManager(append(all, WithPrometheusRegistry(registry))...)
	customRegistry = registry
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "porra",
		subsystem:        "scoring",
		histogramBuckets: defaultLatencyBuckets,
		customLabels:     map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.customLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.customLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	if buckets == nil {
		buckets = m.histogramBuckets
	}
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.customLabels}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.runsTotal = auto.NewCounterVec(m.counterOpts("runs_total",
		"Scoring runs by data source and outcome"), []string{"source", "outcome"})
	m.runDuration = auto.NewHistogram(m.histogramOpts("run_duration_milliseconds",
		"End to end duration of a scoring run", []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}))
	m.scoringLatency = auto.NewHistogram(m.histogramOpts("participant_latency_milliseconds",
		"Time spent scoring one prediction sheet", []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25}))
	m.participants = auto.NewGauge(m.gaugeOpts("participants",
		"Number of prediction sheets scored in the last run"))
	m.catalogRows = auto.NewGauge(m.gaugeOpts("catalog_rows",
		"Number of rows in the last match catalog"))
	m.cellErrors = auto.NewCounterVec(m.counterOpts("cell_errors_total",
		"Grid cells that failed to evaluate, by kind"), []string{"kind"})
	m.topTotal = auto.NewGauge(m.gaugeOpts("leader_total_points",
		"Total points of the current leader"))

	m.feedFetches = auto.NewCounterVec(m.counterOpts("feed_fetches_total",
		"Upstream feed fetches by outcome"), []string{"outcome"})
	m.feedFetchLatency = auto.NewHistogram(m.histogramOpts("feed_fetch_latency_milliseconds",
		"Latency of upstream feed fetches", []float64{25, 50, 100, 250, 500, 1000, 2000, 4000, 8000, 16000}))
	m.feedSource = auto.NewGaugeVec(m.gaugeOpts("feed_source",
		"Source of the schedule used by the last run (1 for the active source)"), []string{"source"})

	m.snapshotSaves = auto.NewCounter(m.counterOpts("snapshot_saves_total",
		"Feed snapshots persisted"))
	m.snapshotErrors = auto.NewCounterVec(m.counterOpts("snapshot_errors_total",
		"Snapshot store failures by operation"), []string{"operation"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", nil), []string{"endpoint", "method", "status_code"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes",
		"System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count",
		"Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordRun counts a finished scoring run.
func RecordRun(source, outcome string, durationMs float64) {
	globalManager.runsTotal.WithLabelValues(source, outcome).Inc()
	globalManager.runDuration.Observe(durationMs)
}

// RecordScoringLatency records the time spent scoring one sheet.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// UpdateParticipants sets the number of scored sheets.
func UpdateParticipants(count int) {
	globalManager.participants.Set(float64(count))
}

// UpdateCatalogRows sets the size of the last catalog.
func UpdateCatalogRows(count int) {
	globalManager.catalogRows.Set(float64(count))
}

// RecordCellError counts a cell that failed to evaluate.
func RecordCellError(kind string) {
	globalManager.cellErrors.WithLabelValues(kind).Inc()
}

// UpdateLeaderTotal sets the points of the first ranked participant.
func UpdateLeaderTotal(total int) {
	globalManager.topTotal.Set(float64(total))
}

// RecordFeedFetch records an upstream fetch attempt.
func RecordFeedFetch(outcome string, latencyMs float64) {
	globalManager.feedFetches.WithLabelValues(outcome).Inc()
	globalManager.feedFetchLatency.Observe(latencyMs)
}

// SetFeedSource marks source as the active schedule source.
func SetFeedSource(source string, all ...string) {
	for _, s := range all {
		globalManager.feedSource.WithLabelValues(s).Set(0)
	}
	globalManager.feedSource.WithLabelValues(source).Set(1)
}

// RecordSnapshotSave counts a persisted snapshot.
func RecordSnapshotSave() {
	globalManager.snapshotSaves.Inc()
}

// RecordSnapshotError counts a snapshot store failure.
func RecordSnapshotError(operation string) {
	globalManager.snapshotErrors.WithLabelValues(operation).Inc()
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
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
