package metrics

import "media-catalog/internal/filesystem"

// catalogFSObserver feeds filesystem.Observer events into the filesystem
// collectors. Missing paths are the normal outcome of the deleted-file
// sweep, so they are counted apart from real I/O errors.
type catalogFSObserver struct{}

// NewFilesystemObserver returns the observer to pass to filesystem.SetObserver.
func NewFilesystemObserver() filesystem.Observer {
	return catalogFSObserver{}
}

func (catalogFSObserver) ObserveOperation(volume, operation string, durationSeconds float64, err error) {
	FilesystemOperationDuration.WithLabelValues(volume, operation).Observe(durationSeconds)
	switch {
	case err == nil:
	case filesystem.IsNotExist(err):
		FilesystemMissingPaths.WithLabelValues(volume, operation).Inc()
	default:
		FilesystemOperationErrors.WithLabelValues(volume, operation).Inc()
	}
}

func (catalogFSObserver) ObserveRetryAttempt(op, volume string) {
	FilesystemRetryAttempts.WithLabelValues(op, volume).Inc()
}

func (catalogFSObserver) ObserveRetrySuccess(op, volume string) {
	FilesystemRetrySuccess.WithLabelValues(op, volume).Inc()
}

func (catalogFSObserver) ObserveRetryFailure(op, volume string) {
	FilesystemRetryFailures.WithLabelValues(op, volume).Inc()
}

func (catalogFSObserver) ObserveRetryDuration(op, volume string, durationSeconds float64) {
	FilesystemRetryDuration.WithLabelValues(op, volume).Observe(durationSeconds)
}

func (catalogFSObserver) ObserveStaleError(op, volume string) {
	FilesystemStaleErrors.WithLabelValues(op, volume).Inc()
}
