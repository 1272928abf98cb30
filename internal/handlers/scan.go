package handlers

import (
	"context"
	"net/http"
	"path/filepath"

	"media-catalog/internal/database"
	"media-catalog/internal/logging"
	"media-catalog/internal/scanner"
)

const defaultHistoryLimit = 20

type scanRequest struct {
	Path string `json:"path"`
}

// ScanStatusResponse reports the scanner's live state alongside the most
// recent job record.
type ScanStatusResponse struct {
	Scanning     bool              `json:"scanning"`
	CurrentJobID string            `json:"currentJobId,omitempty"`
	Job          *database.ScanJob `json:"job,omitempty"`
	LastResult   *scanner.Result   `json:"lastResult,omitempty"`
}

type cleanupRequest struct {
	IDs []string `json:"ids"`
}

type cleanupResponse struct {
	Status    string   `json:"status"`
	Requested int      `json:"requested"`
	Pending   []string `json:"pending"`
}

// TriggerScan starts a background scan of the media directory or of a path
// beneath it.
func (h *Handlers) TriggerScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	root := h.mediaDir
	if req.Path != "" {
		root = req.Path
		if !filepath.IsAbs(root) {
			root = filepath.Join(h.mediaDir, root)
		}
		if !isSubPath(h.mediaDir, root) {
			writeJSONError(w, "path is outside the media directory", http.StatusBadRequest)
			return
		}
	}

	job, err := h.scanner.TriggerScan(r.Context(), root)
	if err != nil {
		writeError(w, "start scan", err)
		return
	}

	logging.Info("Scan %s triggered via API for %s", job.ID, root)
	writeJSONResponse(w, http.StatusAccepted, job)
}

// GetScanStatus reports whether a scan is running and the latest job.
func (h *Handlers) GetScanStatus(w http.ResponseWriter, r *http.Request) {
	response := ScanStatusResponse{
		Scanning:     h.scanner.IsScanning(),
		CurrentJobID: h.scanner.CurrentJobID(),
	}

	job, err := h.db.GetCurrentScanJob(r.Context())
	switch {
	case err == nil:
		response.Job = job
	case statusForError(err) != http.StatusNotFound:
		writeError(w, "get scan status", err)
		return
	}

	if last := h.scanner.LastResult(); last.JobID != "" {
		response.LastResult = &last
	}

	writeJSONResponse(w, http.StatusOK, response)
}

// GetScanHistory lists recent scan jobs, newest first.
func (h *Handlers) GetScanHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit")
	if limit == 0 {
		limit = defaultHistoryLimit
	}

	jobs, err := h.db.ListScanJobs(r.Context(), limit)
	if err != nil {
		writeError(w, "list scan jobs", err)
		return
	}
	if jobs == nil {
		jobs = []database.ScanJob{}
	}
	writeJSONResponse(w, http.StatusOK, jobs)
}

// GetDeletedFiles lists file ids the last scan found missing from disk.
func (h *Handlers) GetDeletedFiles(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string][]string{"ids": h.scanner.GetDeletedFiles()})
}

// CleanupDeletedFiles removes the given deleted-file ids from the catalog,
// or all tracked ones when none are given.
func (h *Handlers) CleanupDeletedFiles(w http.ResponseWriter, r *http.Request) {
	h.cleanup(w, r, "cleanup deleted files", h.scanner.GetDeletedFiles, h.scanner.CleanupDeletedFiles)
}

// GetEmptyDirectories lists directory ids the last scan found empty.
func (h *Handlers) GetEmptyDirectories(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string][]string{"ids": h.scanner.GetEmptyDirectories()})
}

// CleanupEmptyDirectories removes the given empty-directory ids from the
// catalog, or all tracked ones when none are given.
func (h *Handlers) CleanupEmptyDirectories(w http.ResponseWriter, r *http.Request) {
	h.cleanup(w, r, "cleanup empty directories", h.scanner.GetEmptyDirectories, h.scanner.CleanupEmptyDirectories)
}

func (h *Handlers) cleanup(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	tracked func() []string,
	remove func(ctx context.Context, ids []string) error,
) {
	var req cleanupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ids := req.IDs
	if len(ids) == 0 {
		ids = tracked()
	}

	if err := remove(r.Context(), ids); err != nil {
		writeError(w, op, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, cleanupResponse{
		Status:    "ok",
		Requested: len(ids),
		Pending:   tracked(),
	})
}
