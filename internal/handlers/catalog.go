package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"media-catalog/internal/database"
	"media-catalog/internal/mediatypes"
)

const maxPageSize = 500

// ListDirectories returns every directory, the roots (root=true) or the
// children of parentId.
func (h *Handlers) ListDirectories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		dirs []database.Directory
		err  error
	)
	switch {
	case q.Get("parentId") != "":
		dirs, err = h.db.ListChildDirectories(r.Context(), q.Get("parentId"))
	case q.Get("root") != "":
		root, _ := strconv.ParseBool(q.Get("root"))
		if root {
			dirs, err = h.db.ListChildDirectories(r.Context(), "")
		} else {
			dirs, err = h.db.GetDirectories(r.Context())
		}
	default:
		dirs, err = h.db.GetDirectories(r.Context())
	}
	if err != nil {
		writeError(w, "list directories", err)
		return
	}
	if dirs == nil {
		dirs = []database.Directory{}
	}
	writeJSONResponse(w, http.StatusOK, dirs)
}

// GetDirectory returns a single directory record.
func (h *Handlers) GetDirectory(w http.ResponseWriter, r *http.Request) {
	dir, err := h.db.GetDirectory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "get directory", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, dir)
}

// ListFiles returns files filtered by directoryId, search and type, most
// recently updated first.
func (h *Handlers) ListFiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := database.FileFilter{
		DirectoryID: q.Get("directoryId"),
		Search:      q.Get("search"),
		Limit:       queryInt(r, "limit"),
		Offset:      queryInt(r, "offset"),
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if t := q.Get("type"); t != "" {
		filter.Type = mediatypes.FileType(t)
		if !filter.Type.IsValid() {
			writeJSONError(w, "unknown file type: "+t, http.StatusBadRequest)
			return
		}
	}

	files, err := h.db.GetFiles(r.Context(), filter)
	if err != nil {
		writeError(w, "list files", err)
		return
	}
	if files == nil {
		files = []database.File{}
	}
	writeJSONResponse(w, http.StatusOK, files)
}

// GetFile returns a single file record.
func (h *Handlers) GetFile(w http.ResponseWriter, r *http.Request) {
	file, err := h.db.GetFile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "get file", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, file)
}

// GetStats returns catalog totals.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.GetTotalStats(r.Context())
	if err != nil {
		writeError(w, "get stats", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, stats)
}
