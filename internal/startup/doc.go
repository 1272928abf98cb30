// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig]:
//
//   - MEDIA_DIR: Root of the media tree to catalog (default: /media)
//   - DATABASE_DIR: Directory holding catalog.db (default: /database)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - STATS_INTERVAL: Catalog gauge refresh interval as Go duration (default: 1m)
//   - SCAN_SCHEDULE: Cron expression for periodic scans, or "off" (default: 0 */6 * * *)
//   - SCAN_ON_STARTUP: Run a scan as soon as the scheduler starts (default: true)
//   - SCAN_SKIP_HIDDEN: Ignore dot-prefixed files and directories (default: false)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//   - SCAN_WORKERS: Files inspected concurrently per directory (default: 2 per CPU, max 8)
//   - MEMORY_LIMIT, MEMORY_RATIO, GOMEMLIMIT: Go heap limit, see package memory
//
// An invalid SCAN_SCHEDULE or STATS_INTERVAL falls back to its default with a
// warning. The media directory is checked but never created; the database
// directory is created if missing and must be writable.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Lifecycle Logging
//
//   - [LogDatabaseInit]: Database initialization timing
//   - [LogScannerInit]: Scan root and hidden entry handling
//   - [LogSchedulerStarted]: Schedule and next run
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated], [LogShutdownComplete]: Graceful shutdown
package startup
