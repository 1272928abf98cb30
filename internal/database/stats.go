package database

import (
	"context"
	"fmt"
	"time"

	"media-catalog/internal/mediatypes"
	"media-catalog/internal/metrics"
)

// GetTotalStats returns catalog-wide counts and sizes.
func (d *Database) GetTotalStats(ctx context.Context) (stats *TotalStats, err error) {
	start := time.Now()
	defer func() { recordQuery("get_total_stats", start, err) }()

	stats = &TotalStats{FilesByType: make(map[mediatypes.FileType]int)}
	for _, t := range mediatypes.AllFileTypes {
		stats.FilesByType[t] = 0
	}

	err = d.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(size), 0) FROM files`).
		Scan(&stats.TotalFiles, &stats.TotalSize)
	if err != nil {
		return nil, fmt.Errorf("failed to count files: %w", err)
	}

	err = d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM directories`).Scan(&stats.TotalDirectories)
	if err != nil {
		return nil, fmt.Errorf("failed to count directories: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, `SELECT type, COUNT(*) FROM files GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("failed to count files by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			fileType string
			count    int
		)
		if err = rows.Scan(&fileType, &count); err != nil {
			return nil, err
		}
		stats.FilesByType[mediatypes.FileType(fileType)] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// CollectStats adapts GetTotalStats for the metrics collector.
func (d *Database) CollectStats(ctx context.Context) (metrics.Stats, error) {
	d.UpdateDBMetrics()

	total, err := d.GetTotalStats(ctx)
	if err != nil {
		return metrics.Stats{}, err
	}

	byType := make(map[string]int, len(total.FilesByType))
	for t, n := range total.FilesByType {
		byType[string(t)] = n
	}
	return metrics.Stats{
		TotalFiles:       total.TotalFiles,
		TotalDirectories: total.TotalDirectories,
		TotalSize:        total.TotalSize,
		FilesByType:      byType,
	}, nil
}
