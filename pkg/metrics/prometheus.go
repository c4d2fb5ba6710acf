// Package metrics provides Prometheus metrics for the fundboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Dataset metrics
	datasetLoads         prometheus.Counter
	datasetLoadErrors    prometheus.Counter
	datasetFetchDuration prometheus.Histogram

	// Derivation metrics
	deriveDuration prometheus.Histogram
	deriveErrors   prometheus.Counter
	fundingRecords prometheus.Gauge
	derivedPoints  prometheus.Gauge

	// Snapshot metrics
	snapshotCount    prometheus.Counter
	snapshotLastUnix prometheus.Gauge

	// Export metrics
	exportsWritten prometheus.Counter
	exportErrors   prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
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
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fundboard",
		subsystem:        "analytics",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.datasetLoads = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_loads_total",
		Help:      "Number of successful dataset loads.",
	})
	m.datasetLoadErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_errors_total",
		Help:      "Number of failed dataset loads.",
	})
	m.datasetFetchDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_fetch_duration_seconds",
		Help:      "Time spent fetching and parsing the dataset.",
		Buckets:   m.histogramBuckets,
	})

	m.deriveDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "derive_duration_seconds",
		Help:      "Time spent deriving metrics and aggregates.",
		Buckets:   m.histogramBuckets,
	})
	m.deriveErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "derive_errors_total",
		Help:      "Number of failed derivation runs.",
	})
	m.fundingRecords = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "funding_records",
		Help:      "Funding records in the current snapshot.",
	})
	m.derivedPoints = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "derived_points",
		Help:      "Derived metric rows in the current snapshot.",
	})

	m.snapshotCount = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshots_total",
		Help:      "Number of analysis snapshots published.",
	})
	m.snapshotLastUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix",
		Help:      "Unix time of the most recent snapshot.",
	})

	m.exportsWritten = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Number of CSV export bundles written.",
	})
	m.exportErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_errors_total",
		Help:      "Number of failed CSV exports.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method", "status"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes.",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines.",
	})
	m.systemGCPauseTime = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_ms",
		Help:      "Average GC pause time in milliseconds.",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 50, 100},
	})
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording against the global manager.

// RecordDatasetLoad counts one successful dataset load.
func RecordDatasetLoad() { globalManager.datasetLoads.Inc() }

// RecordDatasetLoadError counts one failed dataset load.
func RecordDatasetLoadError() { globalManager.datasetLoadErrors.Inc() }

// RecordDatasetFetchDuration records dataset fetch+parse time in seconds.
func RecordDatasetFetchDuration(seconds float64) {
	globalManager.datasetFetchDuration.Observe(seconds)
}

// RecordDeriveDuration records derivation time in seconds.
func RecordDeriveDuration(seconds float64) { globalManager.deriveDuration.Observe(seconds) }

// RecordDeriveError counts one failed derivation run.
func RecordDeriveError() { globalManager.deriveErrors.Inc() }

// UpdateFundingRecords sets the funding-record gauge.
func UpdateFundingRecords(n int) { globalManager.fundingRecords.Set(float64(n)) }

// UpdateDerivedPoints sets the derived-point gauge.
func UpdateDerivedPoints(n int) { globalManager.derivedPoints.Set(float64(n)) }

// RecordSnapshot counts a published snapshot and stamps its time.
func RecordSnapshot(unix int64) {
	globalManager.snapshotCount.Inc()
	globalManager.snapshotLastUnix.Set(float64(unix))
}

// RecordExport counts one written export bundle.
func RecordExport() { globalManager.exportsWritten.Inc() }

// RecordExportError counts one failed export.
func RecordExportError() { globalManager.exportErrors.Inc() }

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) { globalManager.systemGoroutineCount.Set(float64(n)) }

// RecordSystemGCPauseTime records the average GC pause in milliseconds.
func RecordSystemGCPauseTime(ms float64) { globalManager.systemGCPauseTime.Observe(ms) }
