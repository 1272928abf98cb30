package database

import (
	"context"
	"errors"
	"testing"
)

func TestCreateAndGetDirectory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	root := mustCreateDir(t, db, "/media", "")
	if root.ID == "" {
		t.Fatal("expected generated id")
	}
	if root.ParentID != "" {
		t.Errorf("root ParentID = %q, want empty", root.ParentID)
	}

	got, err := db.GetDirectory(ctx, root.ID)
	if err != nil {
		t.Fatalf("GetDirectory() failed: %v", err)
	}
	if got.Path != "/media" || got.Name != "media" {
		t.Errorf("unexpected directory: %+v", got)
	}

	byPath, err := db.GetDirectoryByPath(ctx, "/media")
	if err != nil {
		t.Fatalf("GetDirectoryByPath() failed: %v", err)
	}
	if byPath.ID != root.ID {
		t.Errorf("GetDirectoryByPath id = %s, want %s", byPath.ID, root.ID)
	}
}

func TestGetDirectoryNotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.GetDirectory(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDirectory() error = %v, want ErrNotFound", err)
	}
	if _, err := db.GetDirectoryByPath(ctx, "/nowhere"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDirectoryByPath() error = %v, want ErrNotFound", err)
	}
}

func TestCreateDirectoryDuplicatePath(t *testing.T) {
	db := setupTestDB(t)
	mustCreateDir(t, db, "/media", "")

	_, err := db.CreateDirectory(context.Background(), DirectoryInput{Name: "media", Path: "/media"})
	if !errors.Is(err, ErrConstraintViolation) {
		t.Errorf("duplicate path error = %v, want ErrConstraintViolation", err)
	}
}

func TestCreateDirectoryUnknownParent(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.CreateDirectory(context.Background(), DirectoryInput{
		Name:     "child",
		Path:     "/media/child",
		ParentID: "no-such-parent",
	})
	if !errors.Is(err, ErrConstraintViolation) {
		t.Errorf("unknown parent error = %v, want ErrConstraintViolation", err)
	}
}

func TestUpdateDirectory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	root := mustCreateDir(t, db, "/media", "")

	count := 3
	size := int64(4096)
	updated, err := db.UpdateDirectory(ctx, root.ID, DirectoryUpdate{FileCount: &count, TotalSize: &size})
	if err != nil {
		t.Fatalf("UpdateDirectory() failed: %v", err)
	}
	if updated.FileCount != 3 || updated.TotalSize != 4096 {
		t.Errorf("unexpected stats: count=%d size=%d", updated.FileCount, updated.TotalSize)
	}
	if updated.Name != "media" {
		t.Errorf("untouched field changed: name=%q", updated.Name)
	}
	if updated.UpdatedAt.Before(root.UpdatedAt) {
		t.Error("UpdatedAt went backwards")
	}

	if _, err := db.UpdateDirectory(ctx, "missing", DirectoryUpdate{FileCount: &count}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateDirectory(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListChildDirectories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	root := mustCreateDir(t, db, "/media", "")
	mustCreateDir(t, db, "/media/b", root.ID)
	mustCreateDir(t, db, "/media/A", root.ID)
	mustCreateDir(t, db, "/other", "")

	roots, err := db.ListChildDirectories(ctx, "")
	if err != nil {
		t.Fatalf("ListChildDirectories(root) failed: %v", err)
	}
	if len(roots) != 2 {
		t.Errorf("expected 2 roots, got %d", len(roots))
	}

	children, err := db.ListChildDirectories(ctx, root.ID)
	if err != nil {
		t.Fatalf("ListChildDirectories() failed: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children[0].Name != "A" || children[1].Name != "b" {
		t.Errorf("children not sorted case-insensitively: %s, %s", children[0].Name, children[1].Name)
	}

	all, err := db.GetDirectories(ctx)
	if err != nil {
		t.Fatalf("GetDirectories() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 directories, got %d", len(all))
	}
}

func TestGetEmptyDirectories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	root := mustCreateDir(t, db, "/media", "")
	withFiles := mustCreateDir(t, db, "/media/photos", root.ID)
	empty := mustCreateDir(t, db, "/media/empty", root.ID)

	count := 1
	if _, err := db.UpdateDirectory(ctx, withFiles.ID, DirectoryUpdate{FileCount: &count}); err != nil {
		t.Fatalf("UpdateDirectory() failed: %v", err)
	}

	dirs, err := db.GetEmptyDirectories(ctx)
	if err != nil {
		t.Fatalf("GetEmptyDirectories() failed: %v", err)
	}
	if len(dirs) != 1 || dirs[0].ID != empty.ID {
		t.Errorf("expected only %s, got %+v", empty.Path, dirs)
	}
}

func TestBatchDeleteDirectoriesCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	root := mustCreateDir(t, db, "/media", "")
	sub := mustCreateDir(t, db, "/media/sub", root.ID)
	nested := mustCreateDir(t, db, "/media/sub/nested", sub.ID)
	f := mustCreateFile(t, db, nested.ID, "/media/sub/nested/clip.mp4", 10)

	deleted, err := db.BatchDeleteDirectories(ctx, []string{sub.ID, "unknown"})
	if err != nil {
		t.Fatalf("BatchDeleteDirectories() failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	if _, err := db.GetDirectory(ctx, nested.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("nested directory should cascade, got %v", err)
	}
	if _, err := db.GetFile(ctx, f.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("file should cascade, got %v", err)
	}
	if _, err := db.GetDirectory(ctx, root.ID); err != nil {
		t.Errorf("root should survive: %v", err)
	}

	// Repeating the delete is a no-op.
	deleted, err = db.BatchDeleteDirectories(ctx, []string{sub.ID})
	if err != nil || deleted != 0 {
		t.Errorf("repeat delete = (%d, %v), want (0, nil)", deleted, err)
	}
}

func TestBatchDeleteDirectoriesEmpty(t *testing.T) {
	db := setupTestDB(t)
	deleted, err := db.BatchDeleteDirectories(context.Background(), nil)
	if err != nil || deleted != 0 {
		t.Errorf("BatchDeleteDirectories(nil) = (%d, %v)", deleted, err)
	}
}
