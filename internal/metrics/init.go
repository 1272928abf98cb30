package metrics

import "media-catalog/internal/mediatypes"

// InitializeMetrics pre-populates the expected label combinations so every
// series is exported from the first scrape. Call once at startup.
func InitializeMetrics() {
	for _, status := range []string{"completed", "error", "rejected"} {
		ScannerRunsTotal.WithLabelValues(status)
	}
	for _, outcome := range []string{"created", "updated", "unchanged"} {
		ScannerFilesProcessed.WithLabelValues(outcome)
	}
	for _, kind := range []string{"entry", "subtree", "fatal"} {
		ScannerErrors.WithLabelValues(kind)
	}

	for _, fileType := range mediatypes.AllFileTypes {
		CatalogFilesTotal.WithLabelValues(string(fileType))
	}

	volumes := []string{"media", "database", "unknown"}
	for _, vol := range volumes {
		for _, op := range []string{"stat", "readdir", "open"} {
			FilesystemOperationDuration.WithLabelValues(vol, op)
			FilesystemOperationErrors.WithLabelValues(vol, op)
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
		}
	}
}
