// Package main implements the entry point for the task management API
// server: an in-memory task store with filtered, paginated retrieval plus
// background jobs with live progress tracking.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/taskdeck/task-api/internal/config"
	"github.com/taskdeck/task-api/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// application dependencies.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"worker_count", cfg.Worker.Count,
		"queue_size", cfg.Worker.QueueSize)

	return newApplication(cfg, appLogger), nil
}
