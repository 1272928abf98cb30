package memory

import (
	"math"
	"runtime/debug"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

// restoreLimit puts back the process memory limit after a test changes it.
func restoreLimit(t *testing.T) {
	t.Helper()
	prev := debug.SetMemoryLimit(-1)
	t.Cleanup(func() { debug.SetMemoryLimit(prev) })
}

func TestConfigureFromEnv(t *testing.T) {
	tests := []struct {
		name           string
		env            map[string]string
		wantConfigured bool
		wantSource     string
		wantLimit      int64
		wantRatio      float64
	}{
		{
			name:       "nothing set",
			env:        map[string]string{},
			wantSource: SourceNone,
		},
		{
			name:           "memory limit with default ratio",
			env:            map[string]string{"MEMORY_LIMIT": "1073741824"},
			wantConfigured: true,
			wantSource:     SourceMemoryLimit,
			wantLimit:      912680550,
			wantRatio:      DefaultMemoryRatio,
		},
		{
			name:           "memory limit with custom ratio",
			env:            map[string]string{"MEMORY_LIMIT": "1073741824", "MEMORY_RATIO": "0.5"},
			wantConfigured: true,
			wantSource:     SourceMemoryLimit,
			wantLimit:      536870912,
			wantRatio:      0.5,
		},
		{
			name:           "out of range ratio falls back",
			env:            map[string]string{"MEMORY_LIMIT": "1073741824", "MEMORY_RATIO": "1.5"},
			wantConfigured: true,
			wantSource:     SourceMemoryLimit,
			wantLimit:      912680550,
			wantRatio:      DefaultMemoryRatio,
		},
		{
			name:       "unparseable limit",
			env:        map[string]string{"MEMORY_LIMIT": "512Mi"},
			wantSource: SourceNone,
		},
		{
			name:       "negative limit",
			env:        map[string]string{"MEMORY_LIMIT": "-5"},
			wantSource: SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreLimit(t)

			got := ConfigureFromEnv(envMap(tt.env))

			if got.Configured != tt.wantConfigured || got.Source != tt.wantSource {
				t.Fatalf("got %+v, want configured=%v source=%s", got, tt.wantConfigured, tt.wantSource)
			}
			if got.GoMemLimit != tt.wantLimit || got.Ratio != tt.wantRatio {
				t.Errorf("limit=%d ratio=%v, want %d %v", got.GoMemLimit, got.Ratio, tt.wantLimit, tt.wantRatio)
			}
			if tt.wantConfigured {
				if applied := debug.SetMemoryLimit(-1); applied != tt.wantLimit {
					t.Errorf("runtime limit = %d, want %d", applied, tt.wantLimit)
				}
			}
		})
	}
}

func TestConfigureFromEnvGoMemLimitWins(t *testing.T) {
	restoreLimit(t)
	debug.SetMemoryLimit(256 << 20)

	got := ConfigureFromEnv(envMap(map[string]string{
		"GOMEMLIMIT":   "256MiB",
		"MEMORY_LIMIT": "1073741824",
	}))

	if got.Source != SourceGoMemLimit || !got.Configured || got.GoMemLimit != 256<<20 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestConfigureFromEnvGoMemLimitUnbounded(t *testing.T) {
	restoreLimit(t)
	debug.SetMemoryLimit(math.MaxInt64)

	got := ConfigureFromEnv(envMap(map[string]string{"GOMEMLIMIT": "off"}))
	if got.Configured {
		t.Errorf("unbounded limit should not count as configured: %+v", got)
	}
}
