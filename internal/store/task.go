// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic; the only implementation today is the in-memory
// one in internal/platform/memory, which is volatile by design.
package store

import (
	"context"

	"github.com/taskdeck/task-api/internal/domain"
)

// TaskFilter is a conjunction of independently optional predicates.
// Nil fields match everything; Tags matches a task carrying any of the
// requested tags.
type TaskFilter struct {
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
	Tags     []string
}

// TaskPage describes a 1-based page window over a filtered listing.
type TaskPage struct {
	Page     int
	PageSize int
}

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create validates the input, assigns the next ID and both timestamps,
	// and stores the task. IDs are monotonically increasing and never
	// reused, even after deletion.
	Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error)

	// Get retrieves a task by ID. Returns ErrTaskNotFound if absent.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// List returns the page of tasks matching the filter, sorted by
	// created_at descending with id ascending as tiebreak, plus the total
	// match count before pagination. A page past the end yields an empty
	// slice with the total still reported.
	List(ctx context.Context, filter TaskFilter, page TaskPage) ([]*domain.Task, int, error)

	// ListByStatus returns every task with the given status, sorted the
	// same way as List, without pagination.
	ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// Update applies a partial update. Only supplied fields change, and
	// updated_at is refreshed only if at least one value actually changed.
	// Returns ErrTaskNotFound if absent and a validation error for an
	// empty patch; an invalid patch touches no fields.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task permanently. Returns ErrTaskNotFound if absent.
	Delete(ctx context.Context, id int64) error

	// Statistics returns exact counts by status over the current map.
	Statistics(ctx context.Context) (domain.TaskStatistics, error)
}
