package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"media-catalog/internal/metrics"
	"media-catalog/internal/scanner"
)

type fakeScanner struct {
	mu       sync.Mutex
	scanning bool
	err      error
	calls    []string
	done     chan struct{}
}

func (f *fakeScanner) IsScanning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scanning
}

func (f *fakeScanner) StartScan(_ context.Context, root string) error {
	f.mu.Lock()
	f.calls = append(f.calls, root)
	done := f.done
	err := f.err
	f.mu.Unlock()
	if done != nil {
		close(done)
	}
	return err
}

func (f *fakeScanner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestIsDisabled(t *testing.T) {
	tests := []struct {
		schedule string
		want     bool
	}{
		{"", true},
		{"off", true},
		{"OFF", true},
		{" disabled ", true},
		{"none", true},
		{"0 */6 * * *", false},
		{"@daily", false},
	}
	for _, tt := range tests {
		if got := IsDisabled(tt.schedule); got != tt.want {
			t.Errorf("IsDisabled(%q) = %v, want %v", tt.schedule, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := []string{"0 */6 * * *", "*/5 * * * *", "@hourly", "@every 90m", "off"}
	for _, s := range valid {
		if err := Validate(s); err != nil {
			t.Errorf("Validate(%q) failed: %v", s, err)
		}
	}

	invalid := []string{"every day", "* * *", "61 * * * *", "0 0 0 * * *"}
	for _, s := range invalid {
		if err := Validate(s); err == nil {
			t.Errorf("Validate(%q) should fail", s)
		}
	}
}

func TestNewRejectsInvalidSchedule(t *testing.T) {
	if _, err := New(&fakeScanner{}, "/media", "not a schedule"); err == nil {
		t.Error("New() should reject an invalid schedule")
	}
}

func TestDisabledScheduler(t *testing.T) {
	fs := &fakeScanner{}
	s, err := New(fs, "/media", "off")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if s.Enabled() {
		t.Error("scheduler should be disabled")
	}
	if !s.Next().IsZero() {
		t.Error("disabled scheduler has no next run")
	}

	s.Start()
	s.Stop()
	if fs.callCount() != 0 {
		t.Errorf("disabled scheduler fired %d scans", fs.callCount())
	}
}

func TestEnabledSchedulerNextRun(t *testing.T) {
	s, err := New(&fakeScanner{}, "/media", "@every 1h")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	s.Start()
	defer s.Stop()

	next := s.Next()
	if next.IsZero() {
		t.Fatal("expected a next run time")
	}
	if d := time.Until(next); d <= 0 || d > time.Hour+time.Second {
		t.Errorf("next run in %v, want about 1h", d)
	}
}

func TestRunOnStart(t *testing.T) {
	fs := &fakeScanner{done: make(chan struct{})}
	s, err := New(fs, "/media", "none", WithRunOnStart(true))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	s.Start()

	select {
	case <-fs.done:
	case <-time.After(5 * time.Second):
		t.Fatal("startup scan did not run")
	}
	s.Stop()

	if fs.callCount() != 1 || fs.calls[0] != "/media" {
		t.Errorf("unexpected scan calls: %v", fs.calls)
	}
}

func TestRunScanSkipsWhileScanning(t *testing.T) {
	fs := &fakeScanner{scanning: true}
	s, err := New(fs, "/media", "off")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	before := testutil.ToFloat64(metrics.ScannerScheduledSkips)
	s.runScan("scheduled")

	if fs.callCount() != 0 {
		t.Error("scan should be skipped while another is running")
	}
	if got := testutil.ToFloat64(metrics.ScannerScheduledSkips) - before; got != 1 {
		t.Errorf("skip counter increased by %v, want 1", got)
	}
}

func TestRunScanSwallowsErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantSkips float64
	}{
		{"lost race", scanner.ErrAlreadyInProgress, 1},
		{"scan failure", errors.New("boom"), 0},
		{"success", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeScanner{err: tt.err}
			s, err := New(fs, "/media", "off")
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}

			before := testutil.ToFloat64(metrics.ScannerScheduledSkips)
			s.runScan("scheduled")

			if fs.callCount() != 1 {
				t.Errorf("expected one scan attempt, got %d", fs.callCount())
			}
			if got := testutil.ToFloat64(metrics.ScannerScheduledSkips) - before; got != tt.wantSkips {
				t.Errorf("skip counter increased by %v, want %v", got, tt.wantSkips)
			}
		})
	}
}
