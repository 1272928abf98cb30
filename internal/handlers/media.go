package handlers

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"

	"media-catalog/internal/database"
	"media-catalog/internal/filesystem"
	"media-catalog/internal/logging"
	"media-catalog/internal/mediatypes"
)

// DownloadFile sends the file as an attachment.
func (h *Handlers) DownloadFile(w http.ResponseWriter, r *http.Request) {
	file, ok := h.lookupFile(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	h.serveCatalogPath(w, r, file.Path, mediatypes.GetMimeType(file.Extension))
}

// StreamFile serves the file inline with range support.
func (h *Handlers) StreamFile(w http.ResponseWriter, r *http.Request) {
	file, ok := h.lookupFile(w, r)
	if !ok {
		return
	}
	h.serveCatalogPath(w, r, file.Path, mediatypes.GetMimeType(file.Extension))
}

// GetSubtitle serves the index'th subtitle sidecar of a video.
func (h *Handlers) GetSubtitle(w http.ResponseWriter, r *http.Request) {
	file, ok := h.lookupFile(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 || index >= len(file.SubtitlePaths) {
		writeJSONError(w, "subtitle not found", http.StatusNotFound)
		return
	}

	path := file.SubtitlePaths[index]
	contentType := "text/plain; charset=utf-8"
	if filepath.Ext(path) == ".vtt" {
		contentType = "text/vtt; charset=utf-8"
	}
	h.serveCatalogPath(w, r, path, contentType)
}

func (h *Handlers) lookupFile(w http.ResponseWriter, r *http.Request) (*database.File, bool) {
	file, err := h.db.GetFile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "get file", err)
		return nil, false
	}
	return file, true
}

// serveCatalogPath serves a cataloged path, refusing anything outside the
// media directory.
func (h *Handlers) serveCatalogPath(w http.ResponseWriter, r *http.Request, path, contentType string) {
	if !isSubPath(h.mediaDir, path) {
		logging.Warn("refusing to serve %s: outside media directory", path)
		writeJSONError(w, "invalid path", http.StatusBadRequest)
		return
	}

	f, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		if filesystem.IsNotExist(err) {
			writeJSONError(w, "file no longer exists on disk", http.StatusNotFound)
			return
		}
		writeError(w, "open file", fmt.Errorf("open %s: %w", path, err))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, "stat file", fmt.Errorf("stat %s: %w", path, err))
		return
	}
	if info.IsDir() {
		writeJSONError(w, "not a file", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
