package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"media-catalog/internal/logging"
	"media-catalog/internal/metrics"
	"media-catalog/internal/scanner"
)

// Scanner is the part of scanner.Scanner the scheduler drives.
type Scanner interface {
	IsScanning() bool
	StartScan(ctx context.Context, rootPath string) error
}

// parser accepts standard five-field expressions and descriptors such as
// "@daily" or "@every 6h".
var parser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// IsDisabled reports whether schedule turns automatic scans off.
func IsDisabled(schedule string) bool {
	switch strings.ToLower(strings.TrimSpace(schedule)) {
	case "", "off", "disabled", "none":
		return true
	}
	return false
}

// Validate checks that schedule is either a disabling sentinel or a
// parseable cron expression.
func Validate(schedule string) error {
	if IsDisabled(schedule) {
		return nil
	}
	if _, err := parser.Parse(strings.TrimSpace(schedule)); err != nil {
		return fmt.Errorf("invalid scan schedule %q: %w", schedule, err)
	}
	return nil
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithRunOnStart fires one scan as soon as the scheduler starts.
func WithRunOnStart(enabled bool) Option {
	return func(s *Scheduler) {
		s.runOnStart = enabled
	}
}

// Scheduler fires scans of one root on a cron schedule. It never queues a
// scan behind a running one.
type Scheduler struct {
	scanner    Scanner
	root       string
	schedule   string
	runOnStart bool

	cron    *cron.Cron
	entryID cron.EntryID
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a scheduler for root. schedule may be a disabling sentinel
// ("", "off", "disabled", "none"), in which case only WithRunOnStart fires.
func New(s Scanner, root, schedule string, opts ...Option) (*Scheduler, error) {
	if err := Validate(schedule); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	sched := &Scheduler{
		scanner:  s,
		root:     root,
		schedule: strings.TrimSpace(schedule),
		cron:     cron.New(cron.WithParser(parser)),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(sched)
	}

	if sched.Enabled() {
		id, err := sched.cron.AddFunc(sched.schedule, func() { sched.runScan("scheduled") })
		if err != nil {
			cancel()
			return nil, fmt.Errorf("invalid scan schedule %q: %w", schedule, err)
		}
		sched.entryID = id
	}
	return sched, nil
}

// Enabled reports whether scans fire on a schedule.
func (s *Scheduler) Enabled() bool {
	return !IsDisabled(s.schedule)
}

// Start begins firing scans.
func (s *Scheduler) Start() {
	if s.runOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runScan("startup")
		}()
	}

	if !s.Enabled() {
		logging.Info("Scheduled scans disabled")
		return
	}

	s.cron.Start()
	logging.Info("Scheduled scans enabled (%s), next run at %s",
		s.schedule, s.Next().Format(time.RFC3339))
}

// Stop halts the schedule, cancels a scan it started, and waits for it to
// return.
func (s *Scheduler) Stop() {
	stopped := s.cron.Stop()
	s.cancel()
	<-stopped.Done()
	s.wg.Wait()
	logging.Info("Scan scheduler stopped")
}

// Next returns the next scheduled run, or the zero time when disabled or
// not started.
func (s *Scheduler) Next() time.Time {
	if !s.Enabled() {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// runScan starts a scan unless one is already running.
func (s *Scheduler) runScan(trigger string) {
	if s.scanner.IsScanning() {
		logging.Info("Skipping %s scan: a scan is already in progress", trigger)
		metrics.ScannerScheduledSkips.Inc()
		return
	}

	logging.Debug("Starting %s scan of %s", trigger, s.root)
	err := s.scanner.StartScan(s.ctx, s.root)
	switch {
	case err == nil:
	case errors.Is(err, scanner.ErrAlreadyInProgress):
		logging.Info("Skipping %s scan: a scan is already in progress", trigger)
		metrics.ScannerScheduledSkips.Inc()
	default:
		logging.Error("%s scan failed: %v", trigger, err)
	}
}
