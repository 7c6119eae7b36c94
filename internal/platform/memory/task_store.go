// Package memory provides the in-memory implementations of the store
// interfaces. All state is volatile and lost on restart, by design.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/taskdeck/task-api/internal/domain"
	"github.com/taskdeck/task-api/internal/store"
)

// TaskStore is an in-memory task store. A single mutex guards the ID
// counter and the map for every operation; operations are map accesses
// only and never block on I/O, so the coarse lock is cheap.
type TaskStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*domain.Task

	now func() time.Time
}

// Statically assert interface compliance.
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		nextID: 1,
		tasks:  make(map[int64]*domain.Task),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithNow overrides the clock, for tests that need deterministic timestamps.
func (s *TaskStore) WithNow(now func() time.Time) *TaskStore {
	s.now = now
	return s
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.nextID
	s.nextID++

	now := s.now()
	task.CreatedAt = now
	task.UpdatedAt = now

	s.tasks[task.ID] = task
	return task.Clone(), nil
}

// Get implements store.TaskStore.
func (s *TaskStore) Get(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// List implements store.TaskStore.
func (s *TaskStore) List(
	ctx context.Context,
	filter store.TaskFilter,
	page store.TaskPage,
) ([]*domain.Task, int, error) {
	if page.Page < 1 {
		return nil, 0, fmt.Errorf("%w: %w: %d", domain.ErrValidation, domain.ErrInvalidPage, page.Page)
	}
	if page.PageSize < 1 || page.PageSize > 100 {
		return nil, 0, fmt.Errorf(
			"%w: %w: %d",
			domain.ErrValidation,
			domain.ErrInvalidPageSize,
			page.PageSize,
		)
	}

	normalizedTags := domain.CleanTags(filter.Tags)

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.matchLocked(filter.Status, filter.Priority, normalizedTags)
	sortTasks(matched)

	total := len(matched)

	start := (page.Page - 1) * page.PageSize
	if start > total {
		start = total
	}
	end := start + page.PageSize
	if end > total {
		end = total
	}

	result := make([]*domain.Task, 0, end-start)
	for _, task := range matched[start:end] {
		result = append(result, task.Clone())
	}
	return result, total, nil
}

// ListByStatus implements store.TaskStore.
func (s *TaskStore) ListByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", domain.ErrValidation, domain.ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.matchLocked(&status, nil, nil)
	sortTasks(matched)

	result := make([]*domain.Task, 0, len(matched))
	for _, task := range matched {
		result = append(result, task.Clone())
	}
	return result, nil
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	// Apply onto a copy so a validation failure leaves the stored record
	// untouched.
	updated := task.Clone()
	changed, err := patch.Apply(updated)
	if err != nil {
		return nil, err
	}

	if changed {
		updated.UpdatedAt = s.now()
	}
	s.tasks[id] = updated

	return updated.Clone(), nil
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// Statistics implements store.TaskStore.
func (s *TaskStore) Statistics(ctx context.Context) (domain.TaskStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.TaskStatistics{Total: len(s.tasks)}
	for _, task := range s.tasks {
		switch task.Status {
		case domain.TaskStatusActive:
			stats.Active++
		case domain.TaskStatusCompleted:
			stats.Completed++
		case domain.TaskStatusArchived:
			stats.Archived++
		}
	}
	return stats, nil
}

// matchLocked collects tasks satisfying the filter conjunction.
// Callers must hold the mutex.
func (s *TaskStore) matchLocked(
	status *domain.TaskStatus,
	priority *domain.TaskPriority,
	tags []string,
) []*domain.Task {
	matched := make([]*domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if status != nil && task.Status != *status {
			continue
		}
		if priority != nil && task.Priority != *priority {
			continue
		}
		if len(tags) > 0 && !task.HasAnyTag(tags) {
			continue
		}
		matched = append(matched, task)
	}
	return matched
}

// sortTasks orders by created_at descending; ties break by id ascending so
// the ordering is deterministic across repeated calls.
func sortTasks(tasks []*domain.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
}
