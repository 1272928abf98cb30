package subtitles

import (
	"path/filepath"
	"strings"

	"media-catalog/internal/filesystem"
	"media-catalog/internal/logging"
	"media-catalog/internal/mediatypes"
)

// Find returns the subtitle files that sit next to videoPath and whose base
// name starts with the video's base name, so movie.en.srt matches
// movie.mp4. Paths are absolute and in directory-listing order. A listing
// failure is logged and yields nil.
func Find(videoPath string) []string {
	dir := filepath.Dir(videoPath)
	videoBase := baseName(filepath.Base(videoPath))

	entries, err := filesystem.ReadDirWithRetry(dir, filesystem.DefaultRetryConfig())
	if err != nil {
		logging.Warn("Failed to list %s for subtitles: %v", dir, err)
		return nil
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !mediatypes.IsSubtitleExtension(filepath.Ext(name)) {
			continue
		}
		if strings.HasPrefix(baseName(name), videoBase) {
			matches = append(matches, absPath(filepath.Join(dir, name)))
		}
	}
	return matches
}

func baseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
