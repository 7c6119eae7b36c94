package main

import (
	"log/slog"

	"github.com/taskdeck/task-api/internal/config"
	"github.com/taskdeck/task-api/internal/platform/memory"
	"github.com/taskdeck/task-api/internal/store"
	"github.com/taskdeck/task-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown. Stores are explicitly
// constructed here and injected into handlers; there is no process-wide
// singleton, so tests build isolated instances the same way.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore
	jobStore  store.JobStore

	// Background job handling
	runner *task.Runner
}

// newApplication creates a new application instance with all dependencies
// initialized and the background runner started.
func newApplication(cfg *config.Config, logger *slog.Logger) *application {
	jobStore := memory.NewJobStore()

	runner := task.NewRunner(jobStore, task.RunnerConfig{
		WorkerCount:  cfg.Worker.Count,
		QueueSize:    cfg.Worker.QueueSize,
		StepInterval: cfg.Worker.StepInterval,
	}, logger)
	runner.Start()

	return &application{
		config:    cfg,
		logger:    logger,
		taskStore: memory.NewTaskStore(),
		jobStore:  jobStore,
		runner:    runner,
	}
}

// cleanup stops the background runner and waits for in-flight jobs to
// finalize their records.
func (app *application) cleanup() {
	app.logger.Info("stopping background runner")
	app.runner.Stop()
}
