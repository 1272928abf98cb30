package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"media-catalog/internal/database"
	"media-catalog/internal/filesystem"
	"media-catalog/internal/logging"
	"media-catalog/internal/mediatypes"
	"media-catalog/internal/metrics"
	"media-catalog/internal/probe"
)

// candidate is a stat'ed file entry awaiting reconciliation.
type candidate struct {
	path     string
	name     string
	ext      string
	fileType mediatypes.FileType
	size     int64
	modTime  time.Time
}

// reconcileDirectory brings the catalog in line with the directory at path
// and everything below it. Subdirectories are reconciled before the
// directory's own files. A failing subdirectory is logged and counted; only
// failures for path itself, or cancellation, are returned.
func (s *Scanner) reconcileDirectory(ctx context.Context, path, parentID string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	entries, err := filesystem.ReadDirWithRetry(path, s.retry)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list %s: %w", path, err)
	}

	dir, err := s.resolveDirectory(ctx, path, parentID)
	if err != nil {
		return Result{}, err
	}

	result := Result{Directories: 1}
	metrics.ScannerDirectoriesProcessed.Inc()

	var files []os.DirEntry
	for _, entry := range entries {
		name := entry.Name()
		if s.skipHidden && strings.HasPrefix(name, ".") {
			continue
		}

		switch {
		case entry.IsDir():
			sub, err := s.reconcileDirectory(ctx, filepath.Join(path, name), dir.ID)
			result.add(sub)
			if err != nil {
				if ctx.Err() != nil {
					return result, ctx.Err()
				}
				logging.Warn("Failed to reconcile %s: %v", filepath.Join(path, name), err)
				metrics.ScannerErrors.WithLabelValues("subtree").Inc()
				result.Errors++
			}
		case entry.Type().IsRegular():
			files = append(files, entry)
		default:
			logging.Debug("Skipping %s: not a regular file or directory", filepath.Join(path, name))
		}
	}

	fileResult, err := s.processFiles(ctx, dir, path, files)
	result.add(fileResult)
	if err != nil {
		return result, err
	}
	return result, nil
}

// resolveDirectory returns the catalog record for path, creating it when
// absent. An existing record only gains a parent link it was missing, as
// happens when a sub-path was scanned before its ancestors.
func (s *Scanner) resolveDirectory(ctx context.Context, path, parentID string) (*database.Directory, error) {
	dir, err := s.store.GetDirectoryByPath(ctx, path)
	if err == nil {
		if dir.ParentID != "" || parentID == "" {
			return dir, nil
		}
		dir, err = s.store.UpdateDirectory(ctx, dir.ID, database.DirectoryUpdate{ParentID: &parentID})
		if err != nil {
			return nil, fmt.Errorf("failed to link directory %s to its parent: %w", path, err)
		}
		logging.Debug("Linked directory %s to parent %s", path, parentID)
		return dir, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up directory %s: %w", path, err)
	}

	dir, err = s.store.CreateDirectory(ctx, database.DirectoryInput{
		Name:     filepath.Base(path),
		Path:     path,
		ParentID: parentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	logging.Debug("Cataloged new directory %s", path)
	return dir, nil
}

// processFiles reconciles the direct file entries of dir in one batch
// lookup plus one batch create and one batch update, then recomputes the
// directory's stats from the disk listing.
func (s *Scanner) processFiles(ctx context.Context, dir *database.Directory, dirPath string, entries []os.DirEntry) (Result, error) {
	var result Result

	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dirPath, entry.Name())
		info, err := filesystem.StatWithRetry(path, s.retry)
		if err != nil {
			logging.Warn("Failed to stat %s: %v", path, err)
			metrics.ScannerErrors.WithLabelValues("entry").Inc()
			result.Errors++
			continue
		}

		ext := mediatypes.NormalizeExtension(filepath.Ext(entry.Name()))
		candidates = append(candidates, candidate{
			path:     path,
			name:     entry.Name(),
			ext:      ext,
			fileType: mediatypes.GetFileType(ext),
			size:     info.Size(),
			modTime:  info.ModTime(),
		})
		result.TotalSize += info.Size()
	}
	result.Files = len(candidates)

	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.path
	}

	existing, err := s.store.GetFilesByPaths(ctx, paths)
	if err != nil {
		return result, fmt.Errorf("failed to look up files in %s: %w", dirPath, err)
	}

	var (
		dirty   []candidate
		records []*database.File
	)
	for _, c := range candidates {
		record, found := existing[c.path]
		if found && !isDirty(record, c) {
			result.Unchanged++
			continue
		}
		dirty = append(dirty, c)
		if found {
			records = append(records, &record)
		} else {
			records = append(records, nil)
		}
	}

	var (
		creates []database.FileInput
		updates []database.FileBatchUpdate
	)
	for i, ins := range s.inspectAll(dirty) {
		c := dirty[i]
		if records[i] == nil {
			modTime := c.modTime
			creates = append(creates, database.FileInput{
				Name:          c.name,
				Path:          c.path,
				DirectoryID:   dir.ID,
				Type:          c.fileType,
				Extension:     c.ext,
				Size:          c.size,
				Duration:      ins.metadata.Duration,
				Width:         ins.metadata.Width,
				Height:        ins.metadata.Height,
				SubtitlePaths: ins.subtitles,
				ModTime:       &modTime,
			})
			continue
		}

		updates = append(updates, database.FileBatchUpdate{
			ID:     records[i].ID,
			Update: buildUpdate(dir.ID, c, ins.metadata, ins.subtitles),
		})
	}

	if len(creates) > 0 {
		if _, err := s.store.BatchCreateFiles(ctx, creates); err != nil {
			return result, fmt.Errorf("failed to create files in %s: %w", dirPath, err)
		}
		result.Created = len(creates)
	}
	if len(updates) > 0 {
		if err := s.store.BatchUpdateFiles(ctx, updates); err != nil {
			return result, fmt.Errorf("failed to update files in %s: %w", dirPath, err)
		}
		result.Updated = len(updates)
	}

	metrics.ScannerFilesProcessed.WithLabelValues("created").Add(float64(result.Created))
	metrics.ScannerFilesProcessed.WithLabelValues("updated").Add(float64(result.Updated))
	metrics.ScannerFilesProcessed.WithLabelValues("unchanged").Add(float64(result.Unchanged))

	fileCount := result.Files
	totalSize := result.TotalSize
	if _, err := s.store.UpdateDirectory(ctx, dir.ID, database.DirectoryUpdate{
		FileCount: &fileCount,
		TotalSize: &totalSize,
	}); err != nil {
		return result, fmt.Errorf("failed to update stats for %s: %w", dirPath, err)
	}

	return result, nil
}

// isDirty reports whether the on-disk entry differs from its record. Only
// the modification time is compared, at millisecond precision.
func isDirty(record database.File, c candidate) bool {
	if record.ModTime == nil {
		return true
	}
	return record.ModTime.UnixMilli() != c.modTime.UnixMilli()
}

// buildUpdate describes the write for a changed file. Subtitles are only
// touched for videos; the thumbnail reference is always kept.
func buildUpdate(dirID string, c candidate, md probe.Metadata, subs []string) database.FileUpdate {
	modTime := c.modTime
	name := c.name
	fileType := c.fileType
	ext := c.ext
	size := c.size
	directoryID := dirID

	update := database.FileUpdate{
		Name:        &name,
		DirectoryID: &directoryID,
		Type:        &fileType,
		Extension:   &ext,
		Size:        &size,
		ModTime:     &modTime,
		Duration:    md.Duration,
		Width:       md.Width,
		Height:      md.Height,
	}
	if c.fileType == mediatypes.FileTypeVideo {
		if subs == nil {
			subs = []string{}
		}
		update.SubtitlePaths = &subs
	}
	return update
}

// probeMetadata runs the configured prober on images and videos. Failures
// leave the metadata empty.
func (s *Scanner) probeMetadata(c candidate) probe.Metadata {
	if s.prober == nil {
		return probe.Metadata{}
	}
	if c.fileType != mediatypes.FileTypeImage && c.fileType != mediatypes.FileTypeVideo {
		return probe.Metadata{}
	}

	md, err := s.prober.Probe(c.path, c.fileType)
	if err != nil {
		logging.Debug("No metadata for %s: %v", c.path, err)
		return probe.Metadata{}
	}
	return md
}
