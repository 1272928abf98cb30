package metrics

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitializeMetricsRegistersLabels(t *testing.T) {
	InitializeMetrics()

	if n := testutil.CollectAndCount(ScannerRunsTotal); n != 3 {
		t.Errorf("ScannerRunsTotal series = %d, want 3", n)
	}
	if n := testutil.CollectAndCount(ScannerErrors); n != 3 {
		t.Errorf("ScannerErrors series = %d, want 3", n)
	}
	if n := testutil.CollectAndCount(CatalogFilesTotal); n < 5 {
		t.Errorf("CatalogFilesTotal series = %d, want at least 5", n)
	}
}

func TestFilesystemObserver(t *testing.T) {
	obs := NewFilesystemObserver()

	before := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("media", "readdir"))
	obs.ObserveOperation("media", "readdir", 0.01, errors.New("boom"))
	obs.ObserveOperation("media", "readdir", 0.01, nil)
	after := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("media", "readdir"))
	if after-before != 1 {
		t.Errorf("readdir errors increased by %v, want 1", after-before)
	}

	// A vanished path is counted as missing, not as an I/O error.
	beforeMissing := testutil.ToFloat64(FilesystemMissingPaths.WithLabelValues("media", "stat"))
	beforeStatErrs := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("media", "stat"))
	obs.ObserveOperation("media", "stat", 0.01, &fs.PathError{Op: "stat", Path: "/media/gone.mp4", Err: fs.ErrNotExist})
	if got := testutil.ToFloat64(FilesystemMissingPaths.WithLabelValues("media", "stat")); got-beforeMissing != 1 {
		t.Errorf("missing paths increased by %v, want 1", got-beforeMissing)
	}
	if got := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("media", "stat")); got != beforeStatErrs {
		t.Errorf("stat errors changed by %v, want 0", got-beforeStatErrs)
	}

	beforeStale := testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues("stat", "media"))
	obs.ObserveStaleError("stat", "media")
	if got := testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues("stat", "media")); got-beforeStale != 1 {
		t.Errorf("stale errors increased by %v, want 1", got-beforeStale)
	}

	obs.ObserveRetryAttempt("stat", "media")
	obs.ObserveRetrySuccess("stat", "media")
	obs.ObserveRetryFailure("stat", "media")
	obs.ObserveRetryDuration("stat", "media", 0.2)
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.2.3", "abc123", "go1.25")

	if got := testutil.ToFloat64(AppInfo.WithLabelValues("1.2.3", "abc123", "go1.25")); got != 1 {
		t.Errorf("AppInfo = %v, want 1", got)
	}
}
