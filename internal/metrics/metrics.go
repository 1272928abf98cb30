package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_catalog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_catalog_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBBatchRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_catalog_db_batch_rows",
			Help:    "Number of rows written per batch operation",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_db_connections_open",
			Help: "Number of open database connections",
		},
	)
)

// Scanner metrics
var (
	ScannerRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_scanner_runs_total",
			Help: "Total number of scan runs by outcome",
		},
		[]string{"status"}, // "completed", "error", "rejected"
	)

	ScannerIsRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_scanner_running",
			Help: "Whether a scan is currently running (1 = running, 0 = idle)",
		},
	)

	ScannerLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_scanner_last_run_timestamp",
			Help: "Unix timestamp of the last finished scan",
		},
	)

	ScannerLastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_scanner_last_run_duration_seconds",
			Help: "Duration of the last scan in seconds",
		},
	)

	ScannerDirectoriesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_catalog_scanner_directories_processed_total",
			Help: "Total number of directories reconciled",
		},
	)

	ScannerFilesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_scanner_files_processed_total",
			Help: "Total number of files seen by the scanner by outcome",
		},
		[]string{"outcome"}, // "created", "updated", "unchanged"
	)

	ScannerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_scanner_errors_total",
			Help: "Total number of contained scanner errors by kind",
		},
		[]string{"kind"}, // "entry", "subtree", "fatal"
	)

	ScannerDeletedFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_scanner_deleted_files",
			Help: "Catalog files missing on disk at the last sweep",
		},
	)

	ScannerEmptyDirectories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_scanner_empty_directories",
			Help: "Empty directories found at the last sweep",
		},
	)

	ScannerScheduledSkips = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_catalog_scanner_scheduled_skips_total",
			Help: "Scheduled scans skipped because a scan was already running",
		},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_catalog_filesystem_operation_duration_seconds",
			Help:    "Filesystem operation duration by volume and operation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"volume", "operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_filesystem_operation_errors_total",
			Help: "Filesystem operation errors by volume and operation",
		},
		[]string{"volume", "operation"},
	)

	FilesystemMissingPaths = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_filesystem_missing_paths_total",
			Help: "Lookups of cataloged paths that no longer exist on disk",
		},
		[]string{"volume", "operation"},
	)

	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_filesystem_retry_attempts_total",
			Help: "Retry attempts after NFS stale file handle errors",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_filesystem_retry_success_total",
			Help: "Operations that succeeded after at least one retry",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_filesystem_retry_failures_total",
			Help: "Operations that failed after exhausting retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_filesystem_stale_errors_total",
			Help: "NFS stale file handle errors observed",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_catalog_filesystem_retry_duration_seconds",
			Help:    "Total duration of retried filesystem operations",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
		[]string{"operation", "volume"},
	)
)

// Catalog metrics
var (
	CatalogFilesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_catalog_files_total",
			Help: "Number of catalog files by type",
		},
		[]string{"type"},
	)

	CatalogDirectoriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_directories_total",
			Help: "Number of catalog directories",
		},
	)

	CatalogSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_size_bytes",
			Help: "Sum of all catalog file sizes in bytes",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_catalog_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
