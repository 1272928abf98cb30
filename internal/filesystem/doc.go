/*
Package filesystem wraps the filesystem calls made by the scanner and the
download handlers with retry logic for NFS stale file handle errors.

Only ESTALE triggers a retry; every other error is returned immediately.
Retries use exponential backoff (defaults: 3 retries, 50ms doubling up to
500ms).

	entries, err := filesystem.ReadDirWithRetry(dir, filesystem.DefaultRetryConfig())
	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())

Metrics are reported through an Observer installed with SetObserver; the
metrics package provides the Prometheus implementation. Paths are labeled
by volume ("media", "database") through a VolumeResolver.
*/
package filesystem
