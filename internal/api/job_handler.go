package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskdeck/task-api/internal/api/shared"
	"github.com/taskdeck/task-api/internal/platform/logger"
	"github.com/taskdeck/task-api/internal/store"
	"github.com/taskdeck/task-api/internal/task"
)

// defaultJobDuration is the simulated work duration in seconds when the
// caller does not supply one.
const defaultJobDuration = 10

// JobHandler handles background job HTTP requests.
type JobHandler struct {
	jobs   store.JobStore
	runner *task.Runner
	logger *slog.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobs store.JobStore, runner *task.Runner, logger *slog.Logger) *JobHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for JobHandler")
	}

	return &JobHandler{
		jobs:   jobs,
		runner: runner,
		logger: logger.With(slog.String("component", "job_handler")),
	}
}

// Start handles POST /background-tasks requests. The duration query
// parameter (seconds, 1-60, default 10) bounds the simulated work. The
// response returns immediately; the job keeps running on its own.
func (h *JobHandler) Start(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	duration := defaultJobDuration
	if raw := r.URL.Query().Get("duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid duration parameter")
			return
		}
		duration = parsed
	}

	jobID, err := h.runner.StartSimulation(r.Context(), duration)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("background job started",
		slog.String("job_id", jobID),
		slog.Int("duration", duration))

	shared.RespondWithJSON(w, r, http.StatusOK, StartJobResponse{
		TaskID:  jobID,
		Status:  "started",
		Message: fmt.Sprintf("Background task started with duration %ds", duration),
	})
}

// Status handles GET /background-tasks/{id} requests.
func (h *JobHandler) Status(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	job, err := h.jobs.Get(r.Context(), jobID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, job)
}

// List handles GET /background-tasks requests, returning all jobs ordered
// by started_at ascending.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, jobs)
}
