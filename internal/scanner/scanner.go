package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"media-catalog/internal/database"
	"media-catalog/internal/filesystem"
	"media-catalog/internal/logging"
	"media-catalog/internal/metrics"
	"media-catalog/internal/probe"
	"media-catalog/internal/subtitles"
	"media-catalog/internal/workers"
)

var (
	// ErrAlreadyInProgress is returned when a scan is requested while one
	// is running.
	ErrAlreadyInProgress = errors.New("scan already in progress")
	// ErrDirectoryNotAccessible is returned when the scan root cannot be
	// read. No scan job is created in that case.
	ErrDirectoryNotAccessible = errors.New("directory not accessible")
	// ErrScanFailed wraps the error that aborted a scan after its job was
	// created.
	ErrScanFailed = errors.New("scan failed")
)

// Store is the subset of the catalog store the scanner depends on.
type Store interface {
	GetDirectoryByPath(ctx context.Context, path string) (*database.Directory, error)
	CreateDirectory(ctx context.Context, input database.DirectoryInput) (*database.Directory, error)
	UpdateDirectory(ctx context.Context, id string, update database.DirectoryUpdate) (*database.Directory, error)
	GetFilesByPaths(ctx context.Context, paths []string) (map[string]database.File, error)
	BatchCreateFiles(ctx context.Context, inputs []database.FileInput) ([]database.File, error)
	BatchUpdateFiles(ctx context.Context, updates []database.FileBatchUpdate) error
	GetAllFiles(ctx context.Context) ([]database.File, error)
	GetEmptyDirectories(ctx context.Context) ([]database.Directory, error)
	BatchDeleteFiles(ctx context.Context, ids []string) (int, error)
	BatchDeleteDirectories(ctx context.Context, ids []string) (int, error)
	CreateScanJob(ctx context.Context, job database.ScanJob) (*database.ScanJob, error)
	UpdateScanJob(ctx context.Context, id string, update database.ScanJobUpdate) (*database.ScanJob, error)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithProber sets the metadata prober run on new or changed images and
// videos. Without one no dimensions or durations are recorded.
func WithProber(p probe.Prober) Option {
	return func(s *Scanner) {
		s.prober = p
	}
}

// WithSkipHidden excludes dot-files and dot-directories from scans.
func WithSkipHidden(skip bool) Option {
	return func(s *Scanner) {
		s.skipHidden = skip
	}
}

// WithRetryConfig overrides the retry policy for filesystem calls.
func WithRetryConfig(cfg filesystem.RetryConfig) Option {
	return func(s *Scanner) {
		s.retry = cfg
	}
}

// WithWorkers sets how many files of a directory are inspected
// concurrently. Values below 1 mean sequential.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		s.workers = n
	}
}

// WithSubtitleFinder replaces the sidecar subtitle lookup.
func WithSubtitleFinder(find func(videoPath string) []string) Option {
	return func(s *Scanner) {
		s.findSubtitles = find
	}
}

// Scanner reconciles a directory tree on disk with the catalog. Only one
// scan runs at a time per Scanner.
type Scanner struct {
	store         Store
	prober        probe.Prober
	skipHidden    bool
	retry         filesystem.RetryConfig
	findSubtitles func(videoPath string) []string
	workers       int

	// ctx bounds scans started with TriggerScan; Stop cancels it.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu               sync.Mutex
	running          bool
	currentJobID     string
	deletedFiles     map[string]struct{}
	emptyDirectories map[string]struct{}
	lastResult       Result
}

// New creates a Scanner over store.
func New(store Store, opts ...Option) *Scanner {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scanner{
		store:            store,
		retry:            filesystem.DefaultRetryConfig(),
		findSubtitles:    subtitles.Find,
		workers:          workers.ForIO(maxInspectWorkers),
		ctx:              ctx,
		cancel:           cancel,
		deletedFiles:     make(map[string]struct{}),
		emptyDirectories: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartScan scans rootPath and returns when the scan has finished. It fails
// with ErrAlreadyInProgress or ErrDirectoryNotAccessible before creating a
// scan job, and with ErrScanFailed if the scan aborted afterwards.
func (s *Scanner) StartScan(ctx context.Context, rootPath string) error {
	root, job, err := s.begin(ctx, rootPath)
	if err != nil {
		return err
	}
	return s.run(ctx, root, job)
}

// TriggerScan starts a scan of rootPath in the background and returns its
// job. Precondition failures are returned synchronously. The background
// scan is bound to the scanner's lifetime, not to ctx.
func (s *Scanner) TriggerScan(ctx context.Context, rootPath string) (*database.ScanJob, error) {
	root, job, err := s.begin(ctx, rootPath)
	if err != nil {
		return nil, err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.run(s.ctx, root, job); err != nil {
			logging.Error("Background scan %s failed: %v", job.ID, err)
		}
	}()
	return job, nil
}

// Stop cancels background scans and waits for them to finish.
func (s *Scanner) Stop() {
	s.cancel()
	s.wg.Wait()
}

// Wait blocks until background scans have finished.
func (s *Scanner) Wait() {
	s.wg.Wait()
}

// begin claims the single-flight guard, checks the root and creates the
// scan job. The guard is released on every failure path.
func (s *Scanner) begin(ctx context.Context, rootPath string) (string, *database.ScanJob, error) {
	if !s.tryStartScanning() {
		return "", nil, ErrAlreadyInProgress
	}

	root, err := filepath.Abs(rootPath)
	if err != nil {
		s.finishScanning()
		return "", nil, fmt.Errorf("%w: %s: %v", ErrDirectoryNotAccessible, rootPath, err)
	}

	if err := s.checkAccessible(root); err != nil {
		s.finishScanning()
		return "", nil, fmt.Errorf("%w: %s: %v", ErrDirectoryNotAccessible, root, err)
	}

	job, err := s.store.CreateScanJob(ctx, database.ScanJob{Status: database.ScanStatusScanning})
	if err != nil {
		s.finishScanning()
		return "", nil, fmt.Errorf("failed to create scan job: %w", err)
	}

	s.mu.Lock()
	s.currentJobID = job.ID
	s.mu.Unlock()

	return root, job, nil
}

// checkAccessible verifies root is a directory we can list.
func (s *Scanner) checkAccessible(root string) error {
	info, err := filesystem.StatWithRetry(root, s.retry)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("not a directory")
	}

	f, err := filesystem.OpenWithRetry(root, s.retry)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// run executes the scan pipeline for a claimed job and records the outcome.
func (s *Scanner) run(ctx context.Context, root string, job *database.ScanJob) error {
	defer s.finishScanning()

	metrics.ScannerIsRunning.Set(1)
	defer metrics.ScannerIsRunning.Set(0)

	start := time.Now()
	logging.Info("Starting scan %s of %s", job.ID, root)

	result, err := s.pipeline(ctx, root)
	result.JobID = job.ID
	result.StartedAt = start
	result.Duration = time.Since(start)

	s.mu.Lock()
	s.lastResult = result
	s.mu.Unlock()

	metrics.ScannerLastRunTimestamp.Set(float64(time.Now().Unix()))
	metrics.ScannerLastRunDuration.Set(result.Duration.Seconds())

	// The job outcome is recorded even when ctx was cancelled.
	recordCtx := context.WithoutCancel(ctx)
	completedAt := time.Now()

	if err != nil {
		metrics.ScannerRunsTotal.WithLabelValues("error").Inc()
		metrics.ScannerErrors.WithLabelValues("fatal").Inc()
		logging.Error("Scan %s failed after %v: %v", job.ID, result.Duration, err)

		status := database.ScanStatusError
		msg := err.Error()
		if _, updErr := s.store.UpdateScanJob(recordCtx, job.ID, database.ScanJobUpdate{
			Status:       &status,
			CompletedAt:  &completedAt,
			ErrorMessage: &msg,
		}); updErr != nil {
			logging.Error("Failed to mark scan job %s as failed: %v", job.ID, updErr)
		}
		return fmt.Errorf("%w: %w", ErrScanFailed, err)
	}

	status := database.ScanStatusCompleted
	progress := 100
	if _, updErr := s.store.UpdateScanJob(recordCtx, job.ID, database.ScanJobUpdate{
		Status:      &status,
		Progress:    &progress,
		CompletedAt: &completedAt,
	}); updErr != nil {
		logging.Error("Failed to mark scan job %s as completed: %v", job.ID, updErr)
	}

	metrics.ScannerRunsTotal.WithLabelValues("completed").Inc()
	logging.Info("Scan complete: %d directories, %d files (%d new, %d updated, %d unchanged), %s in %v",
		result.Directories, result.Files, result.Created, result.Updated, result.Unchanged,
		humanize.Bytes(uint64(result.TotalSize)), result.Duration)
	if result.Errors > 0 {
		logging.Warn("Scan %s skipped %d entries or subtrees after errors", job.ID, result.Errors)
	}
	if result.DeletedFiles > 0 || result.EmptyDirectories > 0 {
		logging.Info("Cleanup candidates: %d deleted files, %d empty directories",
			result.DeletedFiles, result.EmptyDirectories)
	}
	return nil
}

// pipeline reconciles the tree and then runs both sweeps.
func (s *Scanner) pipeline(ctx context.Context, root string) (Result, error) {
	parentID, err := s.catalogedParent(ctx, root)
	if err != nil {
		return Result{}, err
	}

	result, err := s.reconcileDirectory(ctx, root, parentID)
	if err != nil {
		return result, err
	}

	deleted, err := s.detectDeletedFiles(ctx)
	if err != nil {
		return result, fmt.Errorf("deleted-file sweep: %w", err)
	}
	result.DeletedFiles = deleted

	empty, err := s.detectEmptyDirectories(ctx)
	if err != nil {
		return result, fmt.Errorf("empty-directory sweep: %w", err)
	}
	result.EmptyDirectories = empty

	return result, nil
}

// catalogedParent returns the id of root's parent directory when it is
// already in the catalog, so a sub-path scan attaches to the existing tree.
func (s *Scanner) catalogedParent(ctx context.Context, root string) (string, error) {
	parent := filepath.Dir(root)
	if parent == root {
		return "", nil
	}
	dir, err := s.store.GetDirectoryByPath(ctx, parent)
	if errors.Is(err, database.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up parent of %s: %w", root, err)
	}
	return dir.ID, nil
}

// tryStartScanning claims the guard, returns false if a scan is running.
func (s *Scanner) tryStartScanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}
	s.running = true
	return true
}

// finishScanning releases the guard.
func (s *Scanner) finishScanning() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.currentJobID = ""
}

// IsScanning reports whether a scan is in progress.
func (s *Scanner) IsScanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// CurrentJobID returns the id of the running scan job, or "".
func (s *Scanner) CurrentJobID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentJobID
}

// LastResult returns the counts from the most recent scan.
func (s *Scanner) LastResult() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// GetDeletedFiles returns the ids of cataloged files missing from disk at
// the last sweep, sorted.
func (s *Scanner) GetDeletedFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.deletedFiles)
}

// GetEmptyDirectories returns the ids of directories found empty or
// missing at the last sweep, sorted.
func (s *Scanner) GetEmptyDirectories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.emptyDirectories)
}

// CleanupDeletedFiles removes the given files from the catalog and from the
// tracked set. Ids that are not in the tracked set are ignored. On a store error the tracked
// set is left unchanged.
func (s *Scanner) CleanupDeletedFiles(ctx context.Context, ids []string) error {
	ids = s.tracked(&s.deletedFiles, ids)
	if len(ids) == 0 {
		return nil
	}

	deleted, err := s.store.BatchDeleteFiles(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}

	s.mu.Lock()
	for _, id := range ids {
		delete(s.deletedFiles, id)
	}
	remaining := len(s.deletedFiles)
	s.mu.Unlock()

	metrics.ScannerDeletedFiles.Set(float64(remaining))
	logging.Info("Removed %d deleted files from the catalog", deleted)
	return nil
}

// CleanupEmptyDirectories removes the given directories from the catalog
// and from the tracked set. Ids that are not in the tracked set are ignored. On a store error
// the tracked set is left unchanged.
func (s *Scanner) CleanupEmptyDirectories(ctx context.Context, ids []string) error {
	ids = s.tracked(&s.emptyDirectories, ids)
	if len(ids) == 0 {
		return nil
	}

	deleted, err := s.store.BatchDeleteDirectories(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to delete directories: %w", err)
	}

	s.mu.Lock()
	for _, id := range ids {
		delete(s.emptyDirectories, id)
	}
	remaining := len(s.emptyDirectories)
	s.mu.Unlock()

	metrics.ScannerEmptyDirectories.Set(float64(remaining))
	logging.Info("Removed %d empty directories from the catalog", deleted)
	return nil
}

// tracked filters ids down to those present in *set. Sweeps replace the
// map, so it is dereferenced under the lock.
func (s *Scanner) tracked(set *map[string]struct{}, ids []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := (*set)[id]; ok {
			kept = append(kept, id)
		}
	}
	return kept
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
