// Package scheduler runs catalog scans on a cron schedule.
//
// Schedules use the standard five-field cron syntax or descriptors such as
// "@hourly" and "@every 6h" (github.com/robfig/cron/v3). The values "off",
// "disabled", "none" and the empty string turn scheduled scans off.
//
// Scheduled and manual scans share the scanner's single-flight guard. When
// a tick finds a scan already running it logs and skips instead of
// queueing.
package scheduler
