package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"media-catalog/internal/database"
)

type viewRequest struct {
	FileID string `json:"fileId"`
}

type progressRequest struct {
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
}

// RecordView marks a file as viewed by the calling user.
func (h *Handlers) RecordView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := decodeJSON(r, &req); err != nil || req.FileID == "" {
		writeJSONError(w, "fileId is required", http.StatusBadRequest)
		return
	}

	view, err := h.tracker.RecordView(r.Context(), userID(r), req.FileID)
	if err != nil {
		writeError(w, "record view", err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, view)
}

// GetRecentViews lists the calling user's recently viewed files.
func (h *Handlers) GetRecentViews(w http.ResponseWriter, r *http.Request) {
	list, err := h.tracker.RecentViews(r.Context(), userID(r), queryInt(r, "limit"))
	if err != nil {
		writeError(w, "get recent views", err)
		return
	}
	if list == nil {
		list = []database.RecentView{}
	}
	writeJSONResponse(w, http.StatusOK, list)
}

// GetContinueWatching lists videos the calling user has started but not
// finished.
func (h *Handlers) GetContinueWatching(w http.ResponseWriter, r *http.Request) {
	list, err := h.tracker.ContinueWatching(r.Context(), userID(r), queryInt(r, "limit"))
	if err != nil {
		writeError(w, "get continue watching", err)
		return
	}
	if list == nil {
		list = []database.VideoProgress{}
	}
	writeJSONResponse(w, http.StatusOK, list)
}

// GetProgress returns the calling user's playback position for a file.
func (h *Handlers) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.tracker.GetProgress(r.Context(), userID(r), mux.Vars(r)["fileId"])
	if err != nil {
		writeError(w, "get progress", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, progress)
}

// UpdateProgress stores the calling user's playback position for a file.
func (h *Handlers) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	progress, err := h.tracker.UpdateProgress(r.Context(), userID(r), mux.Vars(r)["fileId"], req.CurrentTime, req.Duration)
	if err != nil {
		writeError(w, "update progress", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, progress)
}
