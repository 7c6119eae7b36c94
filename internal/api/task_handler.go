package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskdeck/task-api/internal/api/shared"
	"github.com/taskdeck/task-api/internal/domain"
	"github.com/taskdeck/task-api/internal/platform/logger"
	"github.com/taskdeck/task-api/internal/store"
)

// Pagination defaults and bounds for task listings.
const (
	defaultPage     = 1
	defaultPageSize = 10
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks store.TaskStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /tasks requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid create task payload", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			"Validation error: "+err.Error(), err)
		return
	}

	created, err := h.tasks.Create(r.Context(), req.Input())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task created", slog.Int64("task_id", created.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, created)
}

// Get handles GET /tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	found, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, found)
}

// List handles GET /tasks requests with filtering and pagination.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter store.TaskFilter

	if raw := query.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.Valid() {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = &status
	}

	if raw := query.Get("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		if !priority.Valid() {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid priority filter")
			return
		}
		filter.Priority = &priority
	}

	filter.Tags = query["tags"]

	page, ok := h.intQuery(w, r, "page", defaultPage)
	if !ok {
		return
	}
	pageSize, ok := h.intQuery(w, r, "page_size", defaultPageSize)
	if !ok {
		return
	}

	tasks, total, err := h.tasks.List(r.Context(), filter, store.TaskPage{Page: page, PageSize: pageSize})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListTasksResponse{
		Tasks:    tasks,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListByStatus handles GET /tasks/status/{status} requests.
func (h *TaskHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.TaskStatus(chi.URLParam(r, "status"))

	tasks, err := h.tasks.ListByStatus(r.Context(), status)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Update handles PUT /tasks/{id} requests with a tri-state partial update.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	var patch domain.TaskPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		log.Debug("invalid update task payload", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.tasks.Update(r.Context(), id, patch)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task updated", slog.Int64("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{
		Message: "Task deleted successfully",
		Data:    map[string]any{"task_id": id},
	})
}

// taskID extracts and validates the {id} path parameter, responding with
// 400 itself when the value is not a positive integer.
func (h *TaskHandler) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return 0, false
	}
	return id, true
}

// intQuery parses a positive integer query parameter with a default,
// responding with 400 itself on malformed input.
func (h *TaskHandler) intQuery(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	def int,
) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return value, true
}
