// ABOUTME: Small HTTP surface for operating the sync engine
// ABOUTME: Exposes manual triggers, scheduler status and a liveness probe

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// AdminAPIHandler serves the operational endpoints.
type AdminAPIHandler struct {
	schedule *ScheduleHandler
	logger   *slog.Logger
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Status    string    `json:"status"`
	ErrorCode string    `json:"error_code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TriggerResponse acknowledges an accepted trigger.
type TriggerResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAdminAPIHandler creates the admin API handler.
func NewAdminAPIHandler(schedule *ScheduleHandler, logger *slog.Logger) *AdminAPIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminAPIHandler{schedule: schedule, logger: logger}
}

// Routes returns the handler's mux.
func (h *AdminAPIHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/sync/trigger", h.HandleSyncTrigger)
	mux.HandleFunc("/v1/sync/status", h.HandleSyncStatus)
	mux.HandleFunc("/v1/purge/trigger", h.HandlePurgeTrigger)
	mux.HandleFunc("/v1/feeds/", h.HandleFeedRefresh)
	mux.HandleFunc("/healthz", h.HandleHealth)
	return mux
}

// HandleSyncTrigger starts a full sync pass.
func (h *AdminAPIHandler) HandleSyncTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondWithError(w, "METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.schedule.TriggerSync(); err != nil {
		h.respondWithError(w, "SYNC_BUSY", err.Error(), http.StatusConflict)
		return
	}
	h.respondJSON(w, http.StatusAccepted, TriggerResponse{
		Status:    "accepted",
		Message:   "sync pass started",
		Timestamp: time.Now(),
	})
}

// HandleFeedRefresh starts a pass scoped to one feed. The route shape
// is /v1/feeds/{id}/refresh.
func (h *AdminAPIHandler) HandleFeedRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondWithError(w, "METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/feeds/")
	idStr, ok := strings.CutSuffix(rest, "/refresh")
	if !ok {
		h.respondWithError(w, "NOT_FOUND", "Unknown feed operation", http.StatusNotFound)
		return
	}
	feedID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || feedID <= 0 {
		h.respondWithError(w, "INVALID_FEED_ID", "Feed id must be a positive integer", http.StatusBadRequest)
		return
	}

	if err := h.schedule.TriggerFeedRefresh(feedID); err != nil {
		h.respondWithError(w, "REFRESH_FAILED", err.Error(), http.StatusConflict)
		return
	}
	h.respondJSON(w, http.StatusAccepted, TriggerResponse{
		Status:    "accepted",
		Message:   "feed refresh started",
		Timestamp: time.Now(),
	})
}

// HandlePurgeTrigger starts a purge run.
func (h *AdminAPIHandler) HandlePurgeTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondWithError(w, "METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.schedule.TriggerPurge(); err != nil {
		h.respondWithError(w, "PURGE_FAILED", err.Error(), http.StatusConflict)
		return
	}
	h.respondJSON(w, http.StatusAccepted, TriggerResponse{
		Status:    "accepted",
		Message:   "purge started",
		Timestamp: time.Now(),
	})
}

// HandleSyncStatus returns the scheduler status.
func (h *AdminAPIHandler) HandleSyncStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondWithError(w, "METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.respondJSON(w, http.StatusOK, h.schedule.GetStatus())
}

// HandleHealth is the liveness probe.
func (h *AdminAPIHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if !h.schedule.IsRunning() {
		status = "scheduler stopped"
		code = http.StatusServiceUnavailable
	}
	h.respondJSON(w, code, map[string]string{"status": status})
}

func (h *AdminAPIHandler) respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("Failed to encode response", "error", err)
	}
}

func (h *AdminAPIHandler) respondWithError(w http.ResponseWriter, errorCode, message string, statusCode int) {
	h.respondJSON(w, statusCode, ErrorResponse{
		Status:    "error",
		ErrorCode: errorCode,
		Message:   message,
		Timestamp: time.Now(),
	})
}
