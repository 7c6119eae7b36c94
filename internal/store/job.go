package store

import (
	"context"

	"github.com/taskdeck/task-api/internal/domain"
)

// JobStore defines the interface for background job lifecycle records.
// The lifecycle mutators enforce terminal-state immutability: once a job
// is completed or failed every further mutation returns ErrJobTerminal.
type JobStore interface {
	// Create registers a new job with status running and progress 0,
	// assigning a fresh opaque ID and the started_at timestamp.
	Create(ctx context.Context, message string) (*domain.Job, error)

	// Get retrieves a job by ID. Returns ErrJobNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Job, error)

	// List returns all jobs ordered by started_at ascending, with
	// registration order as tiebreak.
	List(ctx context.Context) ([]*domain.Job, error)

	// RecordProgress updates progress and message on a running job.
	// Progress must stay within 0-100 and never decrease.
	RecordProgress(ctx context.Context, id string, progress int, message string) error

	// Complete transitions a running job to completed with progress 100,
	// the result payload, and a completed_at stamp set exactly once.
	Complete(ctx context.Context, id string, message string, result map[string]any) error

	// Fail transitions a running job to failed with progress reset to 0
	// and a completed_at stamp set exactly once.
	Fail(ctx context.Context, id string, message string) error
}
