package views

import (
	"context"
	"errors"
	"fmt"

	"media-catalog/internal/database"
)

const (
	// DefaultRecentLimit is used when callers pass a non-positive limit.
	DefaultRecentLimit = 20
	// MaxRecentLimit caps list sizes.
	MaxRecentLimit = 100

	// watchedThreshold is the fraction of a video after which it counts as
	// watched.
	watchedThreshold = 0.9
)

// ErrInvalidProgress is returned for negative positions or durations.
var ErrInvalidProgress = errors.New("invalid progress")

// Store is the part of the catalog the tracker reads and writes.
type Store interface {
	GetFile(ctx context.Context, id string) (*database.File, error)
	RecordView(ctx context.Context, userID, fileID string) (*database.RecentView, error)
	GetRecentViews(ctx context.Context, userID string, limit int) ([]database.RecentView, error)
	UpsertVideoProgress(ctx context.Context, progress database.VideoProgress) (*database.VideoProgress, error)
	GetVideoProgress(ctx context.Context, userID, fileID string) (*database.VideoProgress, error)
	GetInProgressVideos(ctx context.Context, userID string, limit int) ([]database.VideoProgress, error)
}

// Tracker records what users open and how far they get through videos.
type Tracker struct {
	store Store
}

// NewTracker creates a Tracker over store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// RecordView marks fileID as just viewed by userID. An unknown file yields
// database.ErrNotFound.
func (t *Tracker) RecordView(ctx context.Context, userID, fileID string) (*database.RecentView, error) {
	file, err := t.store.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	view, err := t.store.RecordView(ctx, userID, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to record view of %s: %w", fileID, err)
	}
	view.File = file
	return view, nil
}

// RecentViews returns the user's most recently viewed files.
func (t *Tracker) RecentViews(ctx context.Context, userID string, limit int) ([]database.RecentView, error) {
	return t.store.GetRecentViews(ctx, userID, clampLimit(limit))
}

// UpdateProgress stores the playback position for a video. The video is
// marked watched once currentTime passes 90% of duration.
func (t *Tracker) UpdateProgress(ctx context.Context, userID, fileID string, currentTime, duration float64) (*database.VideoProgress, error) {
	if currentTime < 0 || duration < 0 {
		return nil, fmt.Errorf("%w: currentTime=%v duration=%v", ErrInvalidProgress, currentTime, duration)
	}

	if _, err := t.store.GetFile(ctx, fileID); err != nil {
		return nil, err
	}

	progress, err := t.store.UpsertVideoProgress(ctx, database.VideoProgress{
		UserID:      userID,
		FileID:      fileID,
		CurrentTime: currentTime,
		Duration:    duration,
		IsWatched:   IsWatched(currentTime, duration),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save progress for %s: %w", fileID, err)
	}
	return progress, nil
}

// GetProgress returns the user's progress on fileID or database.ErrNotFound.
func (t *Tracker) GetProgress(ctx context.Context, userID, fileID string) (*database.VideoProgress, error) {
	return t.store.GetVideoProgress(ctx, userID, fileID)
}

// ContinueWatching lists videos the user started but has not finished.
func (t *Tracker) ContinueWatching(ctx context.Context, userID string, limit int) ([]database.VideoProgress, error) {
	return t.store.GetInProgressVideos(ctx, userID, clampLimit(limit))
}

// IsWatched reports whether currentTime is past the watched threshold.
func IsWatched(currentTime, duration float64) bool {
	return duration > 0 && currentTime > watchedThreshold*duration
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}
