package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router registers every API route on a new router.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Catalog
	api.HandleFunc("/directories", h.ListDirectories).Methods("GET")
	api.HandleFunc("/directories/{id}", h.GetDirectory).Methods("GET")
	api.HandleFunc("/files", h.ListFiles).Methods("GET")
	api.HandleFunc("/files/{id}", h.GetFile).Methods("GET")
	api.HandleFunc("/files/{id}/download", h.DownloadFile).Methods("GET")
	api.HandleFunc("/files/{id}/stream", h.StreamFile).Methods("GET", "HEAD")
	api.HandleFunc("/files/{id}/subtitles/{index:[0-9]+}", h.GetSubtitle).Methods("GET")
	api.HandleFunc("/stats", h.GetStats).Methods("GET")

	// Scanning
	api.HandleFunc("/scan", h.TriggerScan).Methods("POST")
	api.HandleFunc("/scan/status", h.GetScanStatus).Methods("GET")
	api.HandleFunc("/scan/history", h.GetScanHistory).Methods("GET")
	api.HandleFunc("/cleanup/deleted-files", h.GetDeletedFiles).Methods("GET")
	api.HandleFunc("/cleanup/deleted-files", h.CleanupDeletedFiles).Methods("POST")
	api.HandleFunc("/cleanup/empty-directories", h.GetEmptyDirectories).Methods("GET")
	api.HandleFunc("/cleanup/empty-directories", h.CleanupEmptyDirectories).Methods("POST")

	// Views and progress
	api.HandleFunc("/views", h.RecordView).Methods("POST")
	api.HandleFunc("/views/recent", h.GetRecentViews).Methods("GET")
	api.HandleFunc("/progress", h.GetContinueWatching).Methods("GET")
	api.HandleFunc("/progress/{fileId}", h.GetProgress).Methods("GET")
	api.HandleFunc("/progress/{fileId}", h.UpdateProgress).Methods("PUT")

	return r
}

// MetricsHandler returns the Prometheus metrics handler
func (h *Handlers) MetricsHandler() http.Handler {
	return promhttp.Handler()
}
