package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"media-catalog/internal/mediatypes"
	"media-catalog/internal/metrics"
)

const fileColumns = `id, name, path, directory_id, type, extension, size, thumbnail_path, duration,
	width, height, has_subtitles, subtitle_paths, mod_time, created_at, updated_at`

func scanFile(row rowScanner) (*File, error) {
	var (
		f             File
		fileType      string
		thumbnailPath sql.NullString
		duration      sql.NullFloat64
		width         sql.NullInt64
		height        sql.NullInt64
		subtitlesJSON string
		modTime       sql.NullInt64
		createdAt     int64
		updatedAt     int64
	)
	err := row.Scan(&f.ID, &f.Name, &f.Path, &f.DirectoryID, &fileType, &f.Extension, &f.Size,
		&thumbnailPath, &duration, &width, &height, &f.HasSubtitles, &subtitlesJSON,
		&modTime, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	f.Type = mediatypes.FileType(fileType)
	if thumbnailPath.Valid {
		f.ThumbnailPath = &thumbnailPath.String
	}
	if duration.Valid {
		f.Duration = &duration.Float64
	}
	if width.Valid {
		w := int(width.Int64)
		f.Width = &w
	}
	if height.Valid {
		h := int(height.Int64)
		f.Height = &h
	}
	f.SubtitlePaths, err = decodeSubtitlePaths(subtitlesJSON)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", f.ID, err)
	}
	f.ModTime = timePtr(modTime)
	f.CreatedAt = fromMillis(createdAt)
	f.UpdatedAt = fromMillis(updatedAt)
	return &f, nil
}

func encodeSubtitlePaths(paths []string) (string, error) {
	if paths == nil {
		paths = []string{}
	}
	data, err := json.Marshal(paths)
	if err != nil {
		return "", fmt.Errorf("failed to encode subtitle paths: %w", err)
	}
	return string(data), nil
}

func decodeSubtitlePaths(raw string) ([]string, error) {
	paths := []string{}
	if raw == "" {
		return paths, nil
	}
	if err := json.Unmarshal([]byte(raw), &paths); err != nil {
		return nil, fmt.Errorf("invalid subtitle paths: %w", err)
	}
	return paths, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullStringPtr(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func (d *Database) queryFiles(ctx context.Context, query string, args ...interface{}) ([]File, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []File{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}

// escapeLike escapes LIKE wildcards so search terms match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// GetFiles returns files matching filter, most recently updated first.
// Search is a case-insensitive substring match on the file name.
func (d *Database) GetFiles(ctx context.Context, filter FileFilter) (files []File, err error) {
	start := time.Now()
	defer func() { recordQuery("get_files", start, err) }()

	var (
		where []string
		args  []interface{}
	)
	if filter.DirectoryID != "" {
		where = append(where, "directory_id = ?")
		args = append(args, filter.DirectoryID)
	}
	if filter.Search != "" {
		where = append(where, `name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}

	query := `SELECT ` + fileColumns + ` FROM files`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY updated_at DESC, name COLLATE NOCASE`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	files, err = d.queryFiles(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return files, nil
}

// GetAllFiles returns every cataloged file ordered by path.
func (d *Database) GetAllFiles(ctx context.Context) (files []File, err error) {
	start := time.Now()
	defer func() { recordQuery("get_all_files", start, err) }()

	files, err = d.queryFiles(ctx, `SELECT `+fileColumns+` FROM files ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list all files: %w", err)
	}
	return files, nil
}

// GetFile returns the file with the given id or ErrNotFound.
func (d *Database) GetFile(ctx context.Context, id string) (f *File, err error) {
	start := time.Now()
	defer func() { recordQuery("get_file", start, err) }()

	f, err = scanFile(d.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM files WHERE id = ?`, id))
	if err != nil {
		return nil, translateError(err)
	}
	return f, nil
}

// GetFileByPath returns the file at path or ErrNotFound.
func (d *Database) GetFileByPath(ctx context.Context, path string) (f *File, err error) {
	start := time.Now()
	defer func() { recordQuery("get_file_by_path", start, err) }()

	f, err = scanFile(d.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM files WHERE path = ?`, path))
	if err != nil {
		return nil, translateError(err)
	}
	return f, nil
}

// GetFilesByPaths looks up many paths at once. Paths with no record are
// absent from the returned map.
func (d *Database) GetFilesByPaths(ctx context.Context, paths []string) (found map[string]File, err error) {
	start := time.Now()
	defer func() { recordQuery("get_files_by_paths", start, err) }()

	found = make(map[string]File, len(paths))
	for _, batch := range chunk(paths, maxBatchParams) {
		files, err := d.queryFiles(ctx,
			`SELECT `+fileColumns+` FROM files WHERE path IN (`+placeholders(len(batch))+`)`, toArgs(batch)...)
		if err != nil {
			return nil, fmt.Errorf("failed to look up files by path: %w", err)
		}
		for _, f := range files {
			found[f.Path] = f
		}
	}
	return found, nil
}

func (d *Database) newFile(input FileInput) *File {
	now := d.now().UTC().Truncate(time.Millisecond)
	subtitles := input.SubtitlePaths
	if subtitles == nil {
		subtitles = []string{}
	}
	return &File{
		ID:            newID(),
		Name:          input.Name,
		Path:          input.Path,
		DirectoryID:   input.DirectoryID,
		Type:          input.Type,
		Extension:     input.Extension,
		Size:          input.Size,
		ThumbnailPath: input.ThumbnailPath,
		Duration:      input.Duration,
		Width:         input.Width,
		Height:        input.Height,
		HasSubtitles:  len(subtitles) > 0,
		SubtitlePaths: subtitles,
		ModTime:       input.ModTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func insertFile(ctx context.Context, ex interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}, f *File) error {
	subtitles, err := encodeSubtitlePaths(f.SubtitlePaths)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO files (`+fileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.Name, f.Path, f.DirectoryID, string(f.Type), f.Extension, f.Size,
		nullStringPtr(f.ThumbnailPath), nullFloat(f.Duration), nullInt(f.Width), nullInt(f.Height),
		f.HasSubtitles, subtitles, nullMillis(f.ModTime), toMillis(f.CreatedAt), toMillis(f.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert file %s: %w", f.Path, translateError(err))
	}
	return nil
}

// CreateFile inserts a single file. A duplicate path or unknown directory
// yields ErrConstraintViolation.
func (d *Database) CreateFile(ctx context.Context, input FileInput) (f *File, err error) {
	start := time.Now()
	defer func() { recordQuery("create_file", start, err) }()

	f = d.newFile(input)
	d.writeMu.Lock()
	err = insertFile(ctx, d.db, f)
	d.writeMu.Unlock()
	if err != nil {
		return nil, err
	}
	return f, nil
}

// BatchCreateFiles inserts all inputs in one transaction. If any insert
// fails nothing is written.
func (d *Database) BatchCreateFiles(ctx context.Context, inputs []FileInput) (created []File, err error) {
	start := time.Now()
	defer func() { recordQuery("batch_create_files", start, err) }()

	if len(inputs) == 0 {
		return []File{}, nil
	}

	created = make([]File, 0, len(inputs))
	err = d.withTx(ctx, func(tx *sql.Tx) error {
		for _, input := range inputs {
			f := d.newFile(input)
			if err := insertFile(ctx, tx, f); err != nil {
				return err
			}
			created = append(created, *f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.DBBatchRows.WithLabelValues("create_files").Observe(float64(len(created)))
	return created, nil
}

// assignments builds the SET clause for a partial file update.
func (u FileUpdate) assignments(now time.Time) ([]string, []interface{}, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{toMillis(now)}

	add := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.DirectoryID != nil {
		add("directory_id", *u.DirectoryID)
	}
	if u.Type != nil {
		add("type", string(*u.Type))
	}
	if u.Extension != nil {
		add("extension", *u.Extension)
	}
	if u.Size != nil {
		add("size", *u.Size)
	}
	if u.ThumbnailPath != nil {
		add("thumbnail_path", *u.ThumbnailPath)
	}
	if u.Duration != nil {
		add("duration", *u.Duration)
	}
	if u.Width != nil {
		add("width", *u.Width)
	}
	if u.Height != nil {
		add("height", *u.Height)
	}
	if u.SubtitlePaths != nil {
		encoded, err := encodeSubtitlePaths(*u.SubtitlePaths)
		if err != nil {
			return nil, nil, err
		}
		add("subtitle_paths", encoded)
		add("has_subtitles", len(*u.SubtitlePaths) > 0)
	}
	if u.ModTime != nil {
		add("mod_time", toMillis(*u.ModTime))
	}
	return sets, args, nil
}

func (d *Database) applyFileUpdate(ctx context.Context, tx *sql.Tx, id string, update FileUpdate) error {
	sets, args, err := update.assignments(d.now())
	if err != nil {
		return err
	}
	args = append(args, id)

	res, err := tx.ExecContext(ctx, `UPDATE files SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update file %s: %w", id, translateError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("file %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateFile applies a partial update and returns the stored row.
func (d *Database) UpdateFile(ctx context.Context, id string, update FileUpdate) (f *File, err error) {
	start := time.Now()
	defer func() { recordQuery("update_file", start, err) }()

	err = d.withTx(ctx, func(tx *sql.Tx) error {
		return d.applyFileUpdate(ctx, tx, id, update)
	})
	if err != nil {
		return nil, err
	}
	return d.GetFile(ctx, id)
}

// BatchUpdateFiles applies all updates in one transaction. An unknown id
// or failed write rolls back every update in the batch.
func (d *Database) BatchUpdateFiles(ctx context.Context, updates []FileBatchUpdate) (err error) {
	start := time.Now()
	defer func() { recordQuery("batch_update_files", start, err) }()

	if len(updates) == 0 {
		return nil
	}

	err = d.withTx(ctx, func(tx *sql.Tx) error {
		for _, u := range updates {
			if err := d.applyFileUpdate(ctx, tx, u.ID, u.Update); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	metrics.DBBatchRows.WithLabelValues("update_files").Observe(float64(len(updates)))
	return nil
}

// BatchDeleteFiles deletes the given files in one transaction. Unknown ids
// are ignored; the number of rows removed is returned.
func (d *Database) BatchDeleteFiles(ctx context.Context, ids []string) (deleted int, err error) {
	start := time.Now()
	defer func() { recordQuery("batch_delete_files", start, err) }()

	deleted, err = d.batchDelete(ctx, "files", ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete files: %w", err)
	}
	metrics.DBBatchRows.WithLabelValues("delete_files").Observe(float64(deleted))
	return deleted, nil
}
