// Command catalog-scan runs one catalog scan outside the server and reports
// the result.
//
// Usage:
//
//	catalog-scan <command> [path] [--yes]
//
// Commands:
//
//	scan     Reconcile MEDIA_DIR (or path) with the catalog and print a
//	         summary of created, updated and unchanged files.
//
//	cleanup  Scan, then remove files missing from disk and empty
//	         directories. Asks for confirmation on a terminal; otherwise
//	         --yes is required.
//
//	status   Print catalog totals and the outcome of the last scan.
//
// Environment:
//
//	MEDIA_DIR        - Media directory to scan (default: /media)
//	DATABASE_DIR     - Path to database directory (default: /database)
//	SCAN_SKIP_HIDDEN - Ignore dot-prefixed entries (default: false)
//
// The server holds the same database open in WAL mode, so the utility can
// run alongside it. A scan started here does not see the server's in-process
// scan guard; avoid running both at once.
package main
