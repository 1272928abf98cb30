package scanner

import (
	"context"

	"media-catalog/internal/filesystem"
	"media-catalog/internal/logging"
	"media-catalog/internal/metrics"
)

// detectDeletedFiles checks every cataloged file on disk and replaces the
// tracked deleted set with those that no longer exist. Files that cannot be
// checked for other reasons are logged and left out.
func (s *Scanner) detectDeletedFiles(ctx context.Context) (int, error) {
	files, err := s.store.GetAllFiles(ctx)
	if err != nil {
		return 0, err
	}

	deleted := make(map[string]struct{})
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, err := filesystem.StatWithRetry(f.Path, s.retry); err != nil {
			if filesystem.IsNotExist(err) {
				deleted[f.ID] = struct{}{}
				continue
			}
			logging.Warn("Could not check %s: %v", f.Path, err)
		}
	}

	s.mu.Lock()
	s.deletedFiles = deleted
	s.mu.Unlock()

	metrics.ScannerDeletedFiles.Set(float64(len(deleted)))
	logging.Debug("Deleted-file sweep: %d of %d files missing", len(deleted), len(files))
	return len(deleted), nil
}

// detectEmptyDirectories verifies the store's structural-leaf directories
// on disk and replaces the tracked empty set with those that are missing,
// no longer directories, or have no entries. Scan roots are never
// candidates, so an empty media directory keeps its record.
func (s *Scanner) detectEmptyDirectories(ctx context.Context) (int, error) {
	candidates, err := s.store.GetEmptyDirectories(ctx)
	if err != nil {
		return 0, err
	}

	empty := make(map[string]struct{})
	for _, dir := range candidates {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if dir.ParentID == "" {
			continue
		}
		if s.isEmptyOnDisk(dir.Path) {
			empty[dir.ID] = struct{}{}
		}
	}

	s.mu.Lock()
	s.emptyDirectories = empty
	s.mu.Unlock()

	metrics.ScannerEmptyDirectories.Set(float64(len(empty)))
	logging.Debug("Empty-directory sweep: %d of %d candidates empty", len(empty), len(candidates))
	return len(empty), nil
}

func (s *Scanner) isEmptyOnDisk(path string) bool {
	info, err := filesystem.StatWithRetry(path, s.retry)
	if err != nil {
		if filesystem.IsNotExist(err) {
			return true
		}
		logging.Warn("Could not check directory %s: %v", path, err)
		return false
	}
	if !info.IsDir() {
		return true
	}

	entries, err := filesystem.ReadDirWithRetry(path, s.retry)
	if err != nil {
		logging.Warn("Could not list directory %s: %v", path, err)
		return false
	}
	return len(entries) == 0
}
