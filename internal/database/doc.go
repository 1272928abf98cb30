// Package database is the catalog store for media-catalog.
//
// It persists directories, files, scan jobs, recent views and video
// progress in SQLite. All other packages go through this API; nothing else
// touches the database file.
//
// The database runs in WAL mode with foreign keys enabled. Deleting a
// directory cascades to its files and subdirectories, and deleting a file
// cascades to its views and progress rows. Identifiers are UUID strings
// and timestamps are stored as unix milliseconds.
//
// Batch writes (BatchCreateFiles, BatchUpdateFiles, BatchDeleteFiles,
// BatchDeleteDirectories) run in a single transaction and are
// all-or-nothing.
package database
