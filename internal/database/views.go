package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// prefixedFileColumns returns fileColumns qualified with alias.
func prefixedFileColumns(alias string) string {
	cols := strings.Split(fileColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

// RecordView upserts the view of fileID by userID, moving it to the front
// of the user's recent list. An unknown file yields ErrConstraintViolation.
func (d *Database) RecordView(ctx context.Context, userID, fileID string) (view *RecentView, err error) {
	start := time.Now()
	defer func() { recordQuery("record_view", start, err) }()

	now := d.now().UTC().Truncate(time.Millisecond)
	_, err = d.exec(ctx, `
		INSERT INTO recent_views (id, user_id, file_id, viewed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, file_id) DO UPDATE SET viewed_at = excluded.viewed_at`,
		newID(), userID, fileID, toMillis(now))
	if err != nil {
		return nil, fmt.Errorf("failed to record view: %w", translateError(err))
	}

	view = &RecentView{UserID: userID, FileID: fileID, ViewedAt: now}
	err = d.db.QueryRowContext(ctx,
		`SELECT id FROM recent_views WHERE user_id = ? AND file_id = ?`, userID, fileID).Scan(&view.ID)
	if err != nil {
		return nil, translateError(err)
	}
	return view, nil
}

// GetRecentViews returns the user's most recent views, newest first, each
// joined with its file.
func (d *Database) GetRecentViews(ctx context.Context, userID string, limit int) (views []RecentView, err error) {
	start := time.Now()
	defer func() { recordQuery("get_recent_views", start, err) }()

	rows, err := d.db.QueryContext(ctx, `
		SELECT v.id, v.user_id, v.file_id, v.viewed_at, `+prefixedFileColumns("f")+`
		FROM recent_views v
		JOIN files f ON f.id = v.file_id
		WHERE v.user_id = ?
		ORDER BY v.viewed_at DESC, v.rowid DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent views: %w", err)
	}
	defer rows.Close()

	views = []RecentView{}
	for rows.Next() {
		var (
			v        RecentView
			viewedAt int64
		)
		f, err := scanFile(prefixed(rows, &v.ID, &v.UserID, &v.FileID, &viewedAt))
		if err != nil {
			return nil, err
		}
		v.ViewedAt = fromMillis(viewedAt)
		v.File = f
		views = append(views, v)
	}
	return views, rows.Err()
}

// UpsertVideoProgress creates or replaces the user's progress on a file.
func (d *Database) UpsertVideoProgress(ctx context.Context, progress VideoProgress) (stored *VideoProgress, err error) {
	start := time.Now()
	defer func() { recordQuery("upsert_video_progress", start, err) }()

	now := d.now().UTC().Truncate(time.Millisecond)
	_, err = d.exec(ctx, `
		INSERT INTO video_progress (id, user_id, file_id, position_seconds, duration_seconds, is_watched, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, file_id) DO UPDATE SET
			position_seconds = excluded.position_seconds,
			duration_seconds = excluded.duration_seconds,
			is_watched = excluded.is_watched,
			updated_at = excluded.updated_at`,
		newID(), progress.UserID, progress.FileID, progress.CurrentTime, progress.Duration,
		progress.IsWatched, toMillis(now))
	if err != nil {
		return nil, fmt.Errorf("failed to save video progress: %w", translateError(err))
	}
	return d.GetVideoProgress(ctx, progress.UserID, progress.FileID)
}

// GetVideoProgress returns the user's progress on fileID or ErrNotFound.
func (d *Database) GetVideoProgress(ctx context.Context, userID, fileID string) (progress *VideoProgress, err error) {
	start := time.Now()
	defer func() { recordQuery("get_video_progress", start, err) }()

	var (
		p         VideoProgress
		updatedAt int64
	)
	err = d.db.QueryRowContext(ctx, `
		SELECT id, user_id, file_id, position_seconds, duration_seconds, is_watched, updated_at
		FROM video_progress WHERE user_id = ? AND file_id = ?`, userID, fileID).
		Scan(&p.ID, &p.UserID, &p.FileID, &p.CurrentTime, &p.Duration, &p.IsWatched, &updatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	p.UpdatedAt = fromMillis(updatedAt)
	return &p, nil
}

// GetInProgressVideos returns started but unwatched videos for the user,
// most recently updated first, each joined with its file.
func (d *Database) GetInProgressVideos(ctx context.Context, userID string, limit int) (list []VideoProgress, err error) {
	start := time.Now()
	defer func() { recordQuery("get_in_progress_videos", start, err) }()

	rows, err := d.db.QueryContext(ctx, `
		SELECT p.id, p.user_id, p.file_id, p.position_seconds, p.duration_seconds, p.is_watched, p.updated_at,
			`+prefixedFileColumns("f")+`
		FROM video_progress p
		JOIN files f ON f.id = p.file_id
		WHERE p.user_id = ? AND p.is_watched = 0 AND p.position_seconds > 0
		ORDER BY p.updated_at DESC, p.rowid DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-progress videos: %w", err)
	}
	defer rows.Close()

	list = []VideoProgress{}
	for rows.Next() {
		var (
			p         VideoProgress
			updatedAt int64
		)
		f, err := scanFile(prefixed(rows, &p.ID, &p.UserID, &p.FileID, &p.CurrentTime, &p.Duration, &p.IsWatched, &updatedAt))
		if err != nil {
			return nil, err
		}
		p.UpdatedAt = fromMillis(updatedAt)
		p.File = f
		list = append(list, p)
	}
	return list, rows.Err()
}

// prefixedScanner scans leading columns into head before handing the
// remaining destinations to the wrapped scanner.
type prefixedScanner struct {
	row  *sql.Rows
	head []interface{}
}

func prefixed(row *sql.Rows, head ...interface{}) rowScanner {
	return prefixedScanner{row: row, head: head}
}

func (p prefixedScanner) Scan(dest ...interface{}) error {
	return p.row.Scan(append(append([]interface{}{}, p.head...), dest...)...)
}
