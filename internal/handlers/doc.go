// Package handlers provides the HTTP API of the media catalog.
//
// It includes handlers for:
//   - Directory and file browsing with search
//   - File download, range streaming and subtitle sidecars
//   - Triggering scans, scan status and history
//   - Reviewing and cleaning up deleted files and empty directories
//   - Recently viewed files and video playback progress
//   - Health checks, version and catalog stats
//
// The caller is identified by the X-User-ID header; requests without it
// act as the "default" user.
package handlers
