package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const directoryColumns = `id, name, path, parent_id, file_count, total_size, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDirectory(row rowScanner) (*Directory, error) {
	var (
		dir       Directory
		parentID  sql.NullString
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&dir.ID, &dir.Name, &dir.Path, &parentID, &dir.FileCount, &dir.TotalSize, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	dir.ParentID = parentID.String
	dir.CreatedAt = fromMillis(createdAt)
	dir.UpdatedAt = fromMillis(updatedAt)
	return &dir, nil
}

func (d *Database) queryDirectories(ctx context.Context, query string, args ...interface{}) ([]Directory, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dirs := []Directory{}
	for rows.Next() {
		dir, err := scanDirectory(rows)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, *dir)
	}
	return dirs, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// GetDirectories returns every directory ordered by path.
func (d *Database) GetDirectories(ctx context.Context) (dirs []Directory, err error) {
	start := time.Now()
	defer func() { recordQuery("get_directories", start, err) }()

	dirs, err = d.queryDirectories(ctx, `SELECT `+directoryColumns+` FROM directories ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list directories: %w", err)
	}
	return dirs, nil
}

// ListChildDirectories returns the direct children of parentID ordered by
// name. An empty parentID lists the scan roots.
func (d *Database) ListChildDirectories(ctx context.Context, parentID string) (dirs []Directory, err error) {
	start := time.Now()
	defer func() { recordQuery("list_child_directories", start, err) }()

	if parentID == "" {
		dirs, err = d.queryDirectories(ctx,
			`SELECT `+directoryColumns+` FROM directories WHERE parent_id IS NULL ORDER BY name COLLATE NOCASE`)
	} else {
		dirs, err = d.queryDirectories(ctx,
			`SELECT `+directoryColumns+` FROM directories WHERE parent_id = ? ORDER BY name COLLATE NOCASE`, parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list child directories: %w", err)
	}
	return dirs, nil
}

// GetDirectory returns the directory with the given id or ErrNotFound.
func (d *Database) GetDirectory(ctx context.Context, id string) (dir *Directory, err error) {
	start := time.Now()
	defer func() { recordQuery("get_directory", start, err) }()

	row := d.db.QueryRowContext(ctx, `SELECT `+directoryColumns+` FROM directories WHERE id = ?`, id)
	dir, err = scanDirectory(row)
	if err != nil {
		return nil, translateError(err)
	}
	return dir, nil
}

// GetDirectoryByPath returns the directory at path or ErrNotFound.
func (d *Database) GetDirectoryByPath(ctx context.Context, path string) (dir *Directory, err error) {
	start := time.Now()
	defer func() { recordQuery("get_directory_by_path", start, err) }()

	row := d.db.QueryRowContext(ctx, `SELECT `+directoryColumns+` FROM directories WHERE path = ?`, path)
	dir, err = scanDirectory(row)
	if err != nil {
		return nil, translateError(err)
	}
	return dir, nil
}

// CreateDirectory inserts a new directory. A duplicate path or unknown
// parent yields ErrConstraintViolation.
func (d *Database) CreateDirectory(ctx context.Context, input DirectoryInput) (dir *Directory, err error) {
	start := time.Now()
	defer func() { recordQuery("create_directory", start, err) }()

	now := d.now().UTC().Truncate(time.Millisecond)
	dir = &Directory{
		ID:        newID(),
		Name:      input.Name,
		Path:      input.Path,
		ParentID:  input.ParentID,
		FileCount: input.FileCount,
		TotalSize: input.TotalSize,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = d.exec(ctx, `
		INSERT INTO directories (`+directoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		dir.ID, dir.Name, dir.Path, nullString(dir.ParentID), dir.FileCount, dir.TotalSize,
		toMillis(now), toMillis(now))
	if err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", input.Path, translateError(err))
	}
	return dir, nil
}

// UpdateDirectory applies a partial update and returns the stored row.
func (d *Database) UpdateDirectory(ctx context.Context, id string, update DirectoryUpdate) (dir *Directory, err error) {
	start := time.Now()
	defer func() { recordQuery("update_directory", start, err) }()

	sets := []string{"updated_at = ?"}
	args := []interface{}{toMillis(d.now())}
	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.ParentID != nil {
		sets = append(sets, "parent_id = ?")
		args = append(args, nullString(*update.ParentID))
	}
	if update.FileCount != nil {
		sets = append(sets, "file_count = ?")
		args = append(args, *update.FileCount)
	}
	if update.TotalSize != nil {
		sets = append(sets, "total_size = ?")
		args = append(args, *update.TotalSize)
	}
	args = append(args, id)

	res, err := d.exec(ctx, `UPDATE directories SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update directory %s: %w", id, translateError(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
		return nil, err
	}
	return d.GetDirectory(ctx, id)
}

// GetEmptyDirectories returns directories with no files and no child
// directories in the catalog.
func (d *Database) GetEmptyDirectories(ctx context.Context) (dirs []Directory, err error) {
	start := time.Now()
	defer func() { recordQuery("get_empty_directories", start, err) }()

	dirs, err = d.queryDirectories(ctx, `
		SELECT `+directoryColumns+` FROM directories d
		WHERE d.file_count = 0
		  AND NOT EXISTS (SELECT 1 FROM directories c WHERE c.parent_id = d.id)
		ORDER BY d.path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list empty directories: %w", err)
	}
	return dirs, nil
}

// BatchDeleteDirectories deletes the given directories in one transaction.
// Files and subdirectories cascade. Unknown ids are ignored; the number of
// directory rows removed is returned.
func (d *Database) BatchDeleteDirectories(ctx context.Context, ids []string) (deleted int, err error) {
	start := time.Now()
	defer func() { recordQuery("batch_delete_directories", start, err) }()

	deleted, err = d.batchDelete(ctx, "directories", ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete directories: %w", err)
	}
	return deleted, nil
}

// batchDelete removes rows by id from table within one transaction.
func (d *Database) batchDelete(ctx context.Context, table string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var total int64
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		for _, batch := range chunk(ids, maxBatchParams) {
			res, err := tx.ExecContext(ctx,
				`DELETE FROM `+table+` WHERE id IN (`+placeholders(len(batch))+`)`, toArgs(batch)...)
			if err != nil {
				return translateError(err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(total), nil
}
