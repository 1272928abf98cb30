// Package scanner reconciles a directory tree on disk with the catalog.
//
// A scan walks the tree depth-first. For each directory it resolves (or
// creates) the directory record, recurses into subdirectories, and then
// processes the directory's regular files as one batch: a single lookup of
// existing records by path, one batch create for new files and one batch
// update for files whose modification time changed. Directory file counts
// and sizes are recomputed from the disk listing on every pass. Symlinks
// and special files are ignored.
//
// After traversal two sweeps run over the whole catalog. The deleted-file
// sweep records files whose path no longer exists. The empty-directory
// sweep records leaf directories that are missing or empty on disk. Both
// results replace those of the previous scan and are only acted on through
// CleanupDeletedFiles and CleanupEmptyDirectories.
//
// A Scanner runs one scan at a time. A second request while a scan is
// running fails with ErrAlreadyInProgress. Errors reading a single file or
// subdirectory are logged and counted without aborting the scan.
package scanner
