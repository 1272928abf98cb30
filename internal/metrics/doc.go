// Package metrics provides Prometheus instrumentation for the media catalog.
//
// All metrics are prefixed with "media_catalog_" and registered with the
// default registry through promauto.
//
// # Metric Categories
//
// ## HTTP Metrics
//   - HTTPRequestsTotal: requests by method, path and status
//   - HTTPRequestDuration: request duration by method and path
//   - HTTPRequestsInFlight: requests currently being served
//
// ## Database Metrics
//   - DBQueryTotal / DBQueryDuration: store operations by name and outcome
//   - DBBatchRows: rows written per batch create/update/delete
//   - DBConnectionsOpen: open SQLite connections
//
// ## Scanner Metrics
//   - ScannerRunsTotal: scans by outcome (completed, error, rejected)
//   - ScannerIsRunning: 1 while a scan holds the single-flight guard
//   - ScannerLastRunTimestamp / ScannerLastRunDuration
//   - ScannerDirectoriesProcessed, ScannerFilesProcessed (created, updated,
//     unchanged)
//   - ScannerErrors: contained failures by kind (entry, subtree, fatal)
//   - ScannerDeletedFiles / ScannerEmptyDirectories: last sweep results
//   - ScannerScheduledSkips: scheduled ticks skipped by the guard
//
// ## Filesystem Metrics
// Operation latency and NFS retry behavior per volume, recorded through
// the filesystem.Observer implemented in observer.go.
//
// ## Catalog Metrics
// CatalogFilesTotal, CatalogDirectoriesTotal and CatalogSizeBytes are
// refreshed by a [Collector] from a [StatsProvider]:
//
//	collector := metrics.NewCollector(db, time.Minute)
//	collector.Start()
//	defer collector.Stop()
//
// Expose everything with promhttp:
//
//	mux.Handle("/metrics", promhttp.Handler())
//
// Example PromQL, scan failure ratio:
//
//	rate(media_catalog_scanner_runs_total{status="error"}[1d]) /
//	rate(media_catalog_scanner_runs_total[1d])
package metrics
