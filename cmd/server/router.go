package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskdeck/task-api/internal/api"
	apiMiddleware "github.com/taskdeck/task-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's stores
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)
	jobHandler := api.NewJobHandler(app.jobStore, app.runner, app.logger)
	systemHandler := api.NewSystemHandler(app.taskStore, app.logger)

	// System endpoints
	r.Get("/", systemHandler.Root)
	r.Get("/health", systemHandler.Health)
	r.Get("/statistics", systemHandler.Statistics)

	// Task endpoints
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/status/{status}", taskHandler.ListByStatus)
		r.Get("/{id}", taskHandler.Get)
		r.Put("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	// Background job endpoints
	r.Route("/background-tasks", func(r chi.Router) {
		r.Post("/", jobHandler.Start)
		r.Get("/", jobHandler.List)
		r.Get("/{id}", jobHandler.Status)
	})

	return r
}
