package subtitles

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"movie.mp4",
		"movie.en.srt",
		"movie.ASS",
		"movie.forced.vtt",
		"movie.txt",
		"other.srt",
		"mov.srt",
	} {
		touch(t, filepath.Join(dir, name))
	}
	if err := os.Mkdir(filepath.Join(dir, "movie.srt"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	got := Find(filepath.Join(dir, "movie.mp4"))
	sort.Strings(got)

	want := []string{
		filepath.Join(dir, "movie.ASS"),
		filepath.Join(dir, "movie.en.srt"),
		filepath.Join(dir, "movie.forced.vtt"),
	}
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("Find() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Find()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFindReturnsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "clip.mkv"))
	touch(t, filepath.Join(dir, "clip.sub"))

	got := Find(filepath.Join(dir, "clip.mkv"))
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %v", got)
	}
	if !filepath.IsAbs(got[0]) {
		t.Errorf("path %q is not absolute", got[0])
	}
}

func TestFindNoMatches(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "clip.mp4"))
	touch(t, filepath.Join(dir, "unrelated.srt"))

	if got := Find(filepath.Join(dir, "clip.mp4")); len(got) != 0 {
		t.Errorf("Find() = %v, want none", got)
	}
}

func TestFindMissingDirectory(t *testing.T) {
	got := Find(filepath.Join(t.TempDir(), "gone", "clip.mp4"))
	if got != nil {
		t.Errorf("Find() on missing directory = %v, want nil", got)
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"movie.mp4":    "movie",
		"movie.en.srt": "movie.en",
		"noext":        "noext",
		".hidden":      "",
	}
	for in, want := range tests {
		if got := baseName(in); got != want {
			t.Errorf("baseName(%q) = %q, want %q", in, got, want)
		}
	}
}
