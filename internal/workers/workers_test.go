package workers

import (
	"runtime"
	"testing"
)

func TestCount(t *testing.T) {
	t.Setenv(OverrideEnv, "")
	procs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name       string
		multiplier float64
		limit      int
		want       int
	}{
		{"CPU-bound", 1.0, 0, procs},
		{"I/O-bound", 2.0, 0, procs * 2},
		{"limit below computed", 2.0, 1, 1},
		{"tiny multiplier floors at one", 0.0001, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.multiplier, tt.limit); got != tt.want {
				t.Errorf("Count(%v, %d) = %d, want %d", tt.multiplier, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCountOverride(t *testing.T) {
	tests := []struct {
		name     string
		override string
		limit    int
		want     int
	}{
		{"valid override", "3", 0, 3},
		{"override capped by limit", "10", 4, 4},
		{"zero ignored", "0", 0, runtime.GOMAXPROCS(0)},
		{"garbage ignored", "many", 0, runtime.GOMAXPROCS(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(OverrideEnv, tt.override)
			if got := Count(1.0, tt.limit); got != tt.want {
				t.Errorf("Count() with %s=%q = %d, want %d", OverrideEnv, tt.override, got, tt.want)
			}
		})
	}
}

func TestForIO(t *testing.T) {
	t.Setenv(OverrideEnv, "")

	want := runtime.GOMAXPROCS(0) * 2
	if want > 8 {
		want = 8
	}
	if got := ForIO(8); got != want {
		t.Errorf("ForIO(8) = %d, want %d", got, want)
	}
}
