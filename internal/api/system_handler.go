package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taskdeck/task-api/internal/api/shared"
	"github.com/taskdeck/task-api/internal/store"
)

// Version is the API version reported by the system endpoints.
const Version = "1.0.0"

// SystemHandler serves the root, health, and statistics endpoints.
type SystemHandler struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(tasks store.TaskStore, logger *slog.Logger) *SystemHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SystemHandler")
	}

	return &SystemHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "system_handler")),
	}
}

// Root handles GET / requests with an API overview.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
		"message": "Welcome to Task Management API",
		"version": Version,
		"endpoints": map[string]string{
			"tasks":            "/tasks",
			"task_by_id":       "/tasks/{task_id}",
			"tasks_by_status":  "/tasks/status/{status}",
			"background_tasks": "/background-tasks",
			"statistics":       "/statistics",
		},
	})
}

// Health handles GET /health requests.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	})
}

// Statistics handles GET /statistics requests.
func (h *SystemHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tasks.Statistics(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatisticsResponse{
		Statistics: stats,
		Timestamp:  time.Now().UTC(),
	})
}
