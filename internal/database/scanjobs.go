package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const scanJobColumns = `id, status, progress, started_at, completed_at, error_message`

func scanScanJob(row rowScanner) (*ScanJob, error) {
	var (
		job          ScanJob
		status       string
		startedAt    sql.NullInt64
		completedAt  sql.NullInt64
		errorMessage sql.NullString
	)
	if err := row.Scan(&job.ID, &status, &job.Progress, &startedAt, &completedAt, &errorMessage); err != nil {
		return nil, err
	}
	job.Status = ScanStatus(status)
	job.StartedAt = timePtr(startedAt)
	job.CompletedAt = timePtr(completedAt)
	job.ErrorMessage = errorMessage.String
	return &job, nil
}

// CreateScanJob stores a new scan job. An empty ID is generated and a nil
// StartedAt defaults to now.
func (d *Database) CreateScanJob(ctx context.Context, job ScanJob) (created *ScanJob, err error) {
	start := time.Now()
	defer func() { recordQuery("create_scan_job", start, err) }()

	if job.ID == "" {
		job.ID = newID()
	}
	if job.Status == "" {
		job.Status = ScanStatusScanning
	}
	if job.StartedAt == nil {
		now := d.now().UTC().Truncate(time.Millisecond)
		job.StartedAt = &now
	}

	_, err = d.exec(ctx, `
		INSERT INTO scan_jobs (`+scanJobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		job.ID, string(job.Status), job.Progress, nullMillis(job.StartedAt), nullMillis(job.CompletedAt),
		nullString(job.ErrorMessage))
	if err != nil {
		return nil, fmt.Errorf("failed to create scan job: %w", translateError(err))
	}
	return &job, nil
}

// UpdateScanJob applies a partial update and returns the stored job.
func (d *Database) UpdateScanJob(ctx context.Context, id string, update ScanJobUpdate) (job *ScanJob, err error) {
	start := time.Now()
	defer func() { recordQuery("update_scan_job", start, err) }()

	var (
		sets []string
		args []interface{}
	)
	if update.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*update.Status))
	}
	if update.Progress != nil {
		sets = append(sets, "progress = ?")
		args = append(args, *update.Progress)
	}
	if update.CompletedAt != nil {
		sets = append(sets, "completed_at = ?")
		args = append(args, toMillis(*update.CompletedAt))
	}
	if update.ErrorMessage != nil {
		sets = append(sets, "error_message = ?")
		args = append(args, nullString(*update.ErrorMessage))
	}
	if len(sets) == 0 {
		return d.getScanJob(ctx, id)
	}
	args = append(args, id)

	res, err := d.exec(ctx, `UPDATE scan_jobs SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update scan job %s: %w", id, translateError(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
		return nil, err
	}
	return d.getScanJob(ctx, id)
}

func (d *Database) getScanJob(ctx context.Context, id string) (*ScanJob, error) {
	job, err := scanScanJob(d.db.QueryRowContext(ctx, `SELECT `+scanJobColumns+` FROM scan_jobs WHERE id = ?`, id))
	if err != nil {
		return nil, translateError(err)
	}
	return job, nil
}

// GetCurrentScanJob returns the most recently started job, or ErrNotFound
// when no scan has ever run.
func (d *Database) GetCurrentScanJob(ctx context.Context) (job *ScanJob, err error) {
	start := time.Now()
	defer func() { recordQuery("get_current_scan_job", start, err) }()

	job, err = scanScanJob(d.db.QueryRowContext(ctx,
		`SELECT `+scanJobColumns+` FROM scan_jobs ORDER BY started_at DESC, rowid DESC LIMIT 1`))
	if err != nil {
		return nil, translateError(err)
	}
	return job, nil
}

// ListScanJobs returns up to limit jobs, newest first.
func (d *Database) ListScanJobs(ctx context.Context, limit int) (jobs []ScanJob, err error) {
	start := time.Now()
	defer func() { recordQuery("list_scan_jobs", start, err) }()

	if limit <= 0 {
		limit = 20
	}

	rows, err := d.db.QueryContext(ctx,
		`SELECT `+scanJobColumns+` FROM scan_jobs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan jobs: %w", err)
	}
	defer rows.Close()

	jobs = []ScanJob{}
	for rows.Next() {
		job, err := scanScanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}
