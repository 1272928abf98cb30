// Package main provides the entry point for the media catalog server.
//
// The server keeps a SQLite catalog of a media directory in step with the
// filesystem and exposes it over a JSON API.
//
// # Application Lifecycle
//
//  1. Configuration Loading: Reads environment variables and validates directories
//  2. Metrics: Registers Prometheus series and the filesystem retry observer
//  3. Database Initialization: Opens the catalog in WAL mode and applies the schema
//  4. Component Initialization:
//     - Metrics Collector: Publishes catalog gauges every STATS_INTERVAL
//     - Scanner: Reconciles the media tree with the catalog
//     - Scheduler: Runs scans on SCAN_SCHEDULE and optionally at startup
//  5. HTTP Server Setup: Routes, metrics and access log middleware
//  6. Graceful Shutdown: Handles SIGINT/SIGTERM, stops the schedule, cancels a
//     running scan, drains HTTP connections and closes the database
//
// # HTTP Servers
//
//  1. Main Server (default port 8080): catalog, scan, cleanup, view and
//     progress endpoints plus /health, /livez, /readyz and /version
//  2. Metrics Server (default port 9090, optional): /metrics and /health
//
// See the startup package for the environment variables.
package main
