package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"media-catalog/internal/database"
	"media-catalog/internal/probe"
	"media-catalog/internal/scanner"
)

const (
	// Timeout for the short catalog queries of status
	defaultTimeout     = 30 * time.Second
	defaultDatabaseDir = "/database"
	defaultMediaDir    = "/media"
)

// cli carries the process environment so commands can be driven from tests.
type cli struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	interactive bool
	getenv      func(string) string
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, stopping scan...")
		cancel()
	}()

	c := &cli{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
		getenv:      os.Getenv,
	}
	os.Exit(c.run(ctx, os.Args[1:]))
}

func (c *cli) run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		c.printUsage()
		return 1
	}

	command, rest := args[0], args[1:]
	switch command {
	case "scan", "cleanup", "status":
	case "help", "-h", "--help":
		c.printUsage()
		return 0
	default:
		fmt.Fprintf(c.stderr, "Unknown command: %s\n", sanitizeCommand(command))
		c.printUsage()
		return 1
	}

	databaseDir := c.env("DATABASE_DIR", defaultDatabaseDir)
	db, err := database.New(ctx, filepath.Join(databaseDir, "catalog.db"))
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: Failed to open catalog: %v\n", err)
		fmt.Fprintf(c.stderr, "Make sure DATABASE_DIR is set correctly (current: %s)\n", databaseDir)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			fmt.Fprintf(c.stderr, "Warning: failed to close database: %v\n", err)
		}
	}()

	switch command {
	case "scan":
		return c.scan(ctx, db, rest)
	case "cleanup":
		return c.cleanup(ctx, db, rest)
	default:
		return c.status(ctx, db)
	}
}

func (c *cli) env(key, fallback string) string {
	if v := c.getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *cli) newScanner(db *database.Database) *scanner.Scanner {
	return scanner.New(db,
		scanner.WithProber(probe.NewImageProber()),
		scanner.WithSkipHidden(strings.EqualFold(c.env("SCAN_SKIP_HIDDEN", "false"), "true")),
	)
}

func (c *cli) scanRoot(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return c.env("MEDIA_DIR", defaultMediaDir)
}

// runScan scans root and prints the summary.
func (c *cli) runScan(ctx context.Context, sc *scanner.Scanner, root string) bool {
	if c.interactive {
		fmt.Fprintf(c.stdout, "Scanning %s (Ctrl+C to cancel)...\n", root)
	}

	if err := sc.StartScan(ctx, root); err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return false
	}

	c.printResult(sc.LastResult())
	return true
}

func (c *cli) scan(ctx context.Context, db *database.Database, args []string) int {
	sc := c.newScanner(db)
	defer sc.Stop()

	if !c.runScan(ctx, sc, c.scanRoot(args)) {
		return 1
	}
	if n := len(sc.GetDeletedFiles()); n > 0 {
		fmt.Fprintf(c.stdout, "Run 'catalog-scan cleanup' to remove %d missing files from the catalog.\n", n)
	}
	return 0
}

func (c *cli) cleanup(ctx context.Context, db *database.Database, args []string) int {
	sc := c.newScanner(db)
	defer sc.Stop()

	if !c.runScan(ctx, sc, c.scanRoot(args)) {
		return 1
	}

	deleted := sc.GetDeletedFiles()
	empty := sc.GetEmptyDirectories()
	if len(deleted) == 0 && len(empty) == 0 {
		fmt.Fprintln(c.stdout, "Nothing to clean up.")
		return 0
	}

	if !c.confirm(args, fmt.Sprintf("Remove %d missing files and %d empty directories from the catalog?", len(deleted), len(empty))) {
		fmt.Fprintln(c.stdout, "Cleanup skipped.")
		return 0
	}

	if err := sc.CleanupDeletedFiles(ctx, deleted); err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return 1
	}
	if err := sc.CleanupEmptyDirectories(ctx, empty); err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(c.stdout, "Removed %d files and %d directories.\n", len(deleted), len(empty))
	return 0
}

// confirm asks on a terminal and otherwise requires --yes.
func (c *cli) confirm(args []string, question string) bool {
	for _, a := range args {
		if a == "-y" || a == "--yes" {
			return true
		}
	}
	if !c.interactive {
		fmt.Fprintln(c.stderr, "Not a terminal; pass --yes to confirm cleanup.")
		return false
	}

	fmt.Fprintf(c.stdout, "%s [y/N] ", question)
	answer, err := bufio.NewReader(c.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func (c *cli) status(ctx context.Context, db *database.Database) int {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stats, err := db.GetTotalStats(ctx)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(c.stdout, "Files:       %s (%s)\n", humanize.Comma(int64(stats.TotalFiles)), humanize.Bytes(uint64(stats.TotalSize)))
	fmt.Fprintf(c.stdout, "Directories: %s\n", humanize.Comma(int64(stats.TotalDirectories)))

	job, err := db.GetCurrentScanJob(ctx)
	switch {
	case errors.Is(err, database.ErrNotFound):
		fmt.Fprintln(c.stdout, "Last scan:   never")
		return 0
	case err != nil:
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return 1
	}

	when := "in progress"
	if job.CompletedAt != nil {
		when = humanize.Time(*job.CompletedAt)
	} else if job.StartedAt != nil {
		when = "started " + humanize.Time(*job.StartedAt)
	}
	fmt.Fprintf(c.stdout, "Last scan:   %s (%s)\n", job.Status, when)
	if job.ErrorMessage != "" {
		fmt.Fprintf(c.stdout, "Error:       %s\n", job.ErrorMessage)
	}
	return 0
}

func (c *cli) printResult(r scanner.Result) {
	fmt.Fprintf(c.stdout, "Scanned %s files (%s) in %s directories in %s\n",
		humanize.Comma(int64(r.Files)), humanize.Bytes(uint64(r.TotalSize)),
		humanize.Comma(int64(r.Directories)), r.Duration.Round(time.Millisecond))
	fmt.Fprintf(c.stdout, "  created %d, updated %d, unchanged %d, errors %d\n",
		r.Created, r.Updated, r.Unchanged, r.Errors)
	fmt.Fprintf(c.stdout, "  missing files %d, empty directories %d\n",
		r.DeletedFiles, r.EmptyDirectories)
}

// sanitizeCommand replaces anything outside [a-zA-Z0-9_-] with '_'.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func (c *cli) printUsage() {
	fmt.Fprintln(c.stdout, "Media Catalog Scan Utility")
	fmt.Fprintln(c.stdout, "")
	fmt.Fprintln(c.stdout, "Usage: catalog-scan <command> [path] [--yes]")
	fmt.Fprintln(c.stdout, "")
	fmt.Fprintln(c.stdout, "Commands:")
	fmt.Fprintln(c.stdout, "  scan     - Scan the media directory (or path) once")
	fmt.Fprintln(c.stdout, "  cleanup  - Scan, then remove missing files and empty directories")
	fmt.Fprintln(c.stdout, "  status   - Show catalog totals and the last scan")
	fmt.Fprintln(c.stdout, "")
	fmt.Fprintln(c.stdout, "Environment:")
	fmt.Fprintf(c.stdout, "  MEDIA_DIR        - Media directory to scan (default: %s)\n", defaultMediaDir)
	fmt.Fprintf(c.stdout, "  DATABASE_DIR     - Path to database directory (default: %s)\n", defaultDatabaseDir)
	fmt.Fprintln(c.stdout, "  SCAN_SKIP_HIDDEN - Ignore dot-prefixed entries (default: false)")
}
