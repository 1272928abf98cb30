package handlers

import (
	"net/http"
	"runtime"
	"time"

	"media-catalog/internal/database"
	"media-catalog/internal/startup"
)

const (
	statusHealthy     = "healthy"
	statusDegraded    = "degraded"
	statusUnavailable = "unavailable"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	Ready        bool   `json:"ready"`
	Version      string `json:"version"`
	Uptime       string `json:"uptime"`
	Scanning     bool   `json:"scanning"`
	CurrentJobID string `json:"currentJobId,omitempty"`
	LastScan     string `json:"lastScan,omitempty"`
	LastScanErr  string `json:"lastScanError,omitempty"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`

	// Catalog summary
	TotalFiles       int `json:"totalFiles"`
	TotalDirectories int `json:"totalDirectories"`
}

// HealthCheck returns the health status of the service. A failed last scan
// degrades the status; an unreachable database makes it unavailable.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:       statusHealthy,
		Ready:        true,
		Version:      startup.Version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		Scanning:     h.scanner.IsScanning(),
		CurrentJobID: h.scanner.CurrentJobID(),
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	stats, err := h.db.GetTotalStats(r.Context())
	if err != nil {
		response.Status = statusUnavailable
		response.Ready = false
		writeJSONResponse(w, http.StatusServiceUnavailable, response)
		return
	}
	response.TotalFiles = stats.TotalFiles
	response.TotalDirectories = stats.TotalDirectories

	if job, err := h.db.GetCurrentScanJob(r.Context()); err == nil && job != nil {
		if job.CompletedAt != nil {
			response.LastScan = job.CompletedAt.Format(time.RFC3339)
		}
		if job.Status == database.ScanStatusError {
			response.Status = statusDegraded
			response.LastScanErr = job.ErrorMessage
		}
	}

	writeJSONResponse(w, http.StatusOK, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 once the catalog database answers queries
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if _, err := h.db.GetTotalStats(r.Context()); err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
		})
		return
	}
	writeJSONStatus(w, "ready")
}

// GetVersion returns the application version and build information
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, startup.GetBuildInfo())
}
