package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"
)

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.MaxRetries)
	}
	if config.InitialBackoff != 50*time.Millisecond {
		t.Errorf("InitialBackoff = %v, want 50ms", config.InitialBackoff)
	}
	if config.MaxBackoff != 500*time.Millisecond {
		t.Errorf("MaxBackoff = %v, want 500ms", config.MaxBackoff)
	}
	if config.VolumeResolver != nil {
		t.Error("VolumeResolver should be nil by default")
	}
}

func TestIsNFSStaleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "ESTALE error", err: syscall.ESTALE, want: true},
		{name: "wrapped ESTALE", err: &os.PathError{Op: "stat", Path: "/x", Err: syscall.ESTALE}, want: true},
		{name: "ENOENT error", err: syscall.ENOENT, want: false},
		{name: "generic error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNFSStaleError(tt.err); got != tt.want {
				t.Errorf("isNFSStaleError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsNotExist(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, errMissing := os.Stat(filepath.Join(dir, "missing"))
	_, errNotDir := os.Stat(filepath.Join(file, "child"))

	if !IsNotExist(errMissing) {
		t.Errorf("IsNotExist(%v) = false, want true", errMissing)
	}
	if !IsNotExist(errNotDir) {
		t.Errorf("IsNotExist(%v) = false, want true", errNotDir)
	}
	if IsNotExist(errors.New("permission denied")) {
		t.Error("IsNotExist should be false for unrelated errors")
	}
}

func TestStatWithRetry(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mp4")
	if err := os.WriteFile(file, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := StatWithRetry(file, DefaultRetryConfig())
	if err != nil {
		t.Fatalf("StatWithRetry() error = %v", err)
	}
	if info.Size() != 5 {
		t.Errorf("Size() = %d, want 5", info.Size())
	}

	start := time.Now()
	if _, err := StatWithRetry(filepath.Join(dir, "missing"), DefaultRetryConfig()); !IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if time.Since(start) > 40*time.Millisecond {
		t.Error("non-ESTALE errors must not be retried")
	}
}

func TestReadDirWithRetry(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadDirWithRetry(dir, DefaultRetryConfig())
	if err != nil {
		t.Fatalf("ReadDirWithRetry() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	// os.ReadDir sorts by name
	if entries[0].Name() != "a.txt" || !entries[1].IsDir() {
		t.Errorf("unexpected entries: %s, %s", entries[0].Name(), entries[1].Name())
	}
}

func TestOpenWithRetry(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(file, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenWithRetry(file, DefaultRetryConfig())
	if err != nil {
		t.Fatalf("OpenWithRetry() error = %v", err)
	}
	f.Close()
}

type recordingObserver struct {
	mu       sync.Mutex
	attempts int
	stale    int
	failures int
	success  int
	ops      []string
}

func (r *recordingObserver) ObserveOperation(volume, operation string, _ float64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, fmt.Sprintf("%s/%s/%v", volume, operation, err != nil))
}
func (r *recordingObserver) ObserveRetryAttempt(_, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts++
}

func (r *recordingObserver) ObserveRetrySuccess(_, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
}

func (r *recordingObserver) ObserveRetryFailure(_, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
}

func (r *recordingObserver) ObserveRetryDuration(_, _ string, _ float64) {}

func (r *recordingObserver) ObserveStaleError(_, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale++
}

func TestWithRetryStaleHandling(t *testing.T) {
	obs := &recordingObserver{}
	SetObserver(obs)
	defer SetObserver(nil)

	config := RetryConfig{
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		VolumeResolver: NewVolumeResolver(map[string]string{"media": "/media"}),
	}

	calls := 0
	got, err := withRetry("stat", "/media/a.mp4", config, func() (int, error) {
		calls++
		if calls < 2 {
			return 0, syscall.ESTALE
		}
		return 7, nil
	})
	if err != nil || got != 7 {
		t.Fatalf("withRetry() = (%d, %v), want (7, nil)", got, err)
	}
	if obs.stale != 1 || obs.attempts != 1 || obs.success != 1 {
		t.Errorf("stale=%d attempts=%d success=%d, want 1/1/1", obs.stale, obs.attempts, obs.success)
	}

	calls = 0
	_, err = withRetry("stat", "/media/a.mp4", config, func() (int, error) {
		calls++
		return 0, syscall.ESTALE
	})
	if !errors.Is(err, syscall.ESTALE) {
		t.Errorf("expected ESTALE after exhausting retries, got %v", err)
	}
	if calls != config.MaxRetries+1 {
		t.Errorf("calls = %d, want %d", calls, config.MaxRetries+1)
	}
	if obs.failures != 1 {
		t.Errorf("failures = %d, want 1", obs.failures)
	}
	if len(obs.ops) != 2 || obs.ops[0] != "media/stat/false" || obs.ops[1] != "media/stat/true" {
		t.Errorf("unexpected operations: %v", obs.ops)
	}
}

func TestVolumeResolver(t *testing.T) {
	vr := NewVolumeResolver(map[string]string{
		"media":    "/media",
		"movies":   "/media/movies",
		"database": "/database",
	})

	tests := []struct {
		path string
		want string
	}{
		{"/media/show/e01.mkv", "media"},
		{"/media/movies/film.mp4", "movies"},
		{"/media", "media"},
		{"/database/catalog.db", "database"},
		{"/mediafiles/x", "unknown"},
		{"/tmp/x", "unknown"},
	}

	for _, tt := range tests {
		if got := vr.Resolve(tt.path); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}

	var nilResolver *VolumeResolver
	if got := nilResolver.Resolve("/media"); got != "unknown" {
		t.Errorf("nil resolver Resolve() = %q, want unknown", got)
	}
}
