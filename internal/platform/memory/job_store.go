package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/task-api/internal/domain"
	"github.com/taskdeck/task-api/internal/store"
)

// jobRecord pairs a job with its registration sequence number so listings
// stay deterministic when two jobs share a started_at timestamp.
type jobRecord struct {
	job *domain.Job
	seq int64
}

// JobStore is an in-memory background job store. It owns its own mutex,
// independent of the task store, so no operation ever holds both locks.
type JobStore struct {
	mu      sync.Mutex
	jobs    map[string]jobRecord
	nextSeq int64

	now func() time.Time
}

var _ store.JobStore = (*JobStore)(nil)

// NewJobStore creates an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[string]jobRecord),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithNow overrides the clock, for tests that need deterministic timestamps.
func (s *JobStore) WithNow(now func() time.Time) *JobStore {
	s.now = now
	return s
}

// Create implements store.JobStore.
func (s *JobStore) Create(ctx context.Context, message string) (*domain.Job, error) {
	job := &domain.Job{
		ID:        uuid.New().String(),
		Status:    domain.JobStatusRunning,
		Progress:  0,
		Message:   message,
		StartedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[job.ID] = jobRecord{job: job, seq: s.nextSeq}
	s.nextSeq++

	return job.Clone(), nil
}

// Get implements store.JobStore.
func (s *JobStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrJobNotFound
	}
	return rec.job.Clone(), nil
}

// List implements store.JobStore.
func (s *JobStore) List(ctx context.Context) ([]*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]jobRecord, 0, len(s.jobs))
	for _, rec := range s.jobs {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].job.StartedAt.Equal(records[j].job.StartedAt) {
			return records[i].job.StartedAt.Before(records[j].job.StartedAt)
		}
		return records[i].seq < records[j].seq
	})

	jobs := make([]*domain.Job, 0, len(records))
	for _, rec := range records {
		jobs = append(jobs, rec.job.Clone())
	}
	return jobs, nil
}

// RecordProgress implements store.JobStore.
func (s *JobStore) RecordProgress(ctx context.Context, id string, progress int, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.mutableLocked(id)
	if err != nil {
		return err
	}

	if progress < 0 || progress > 100 || progress < job.Progress {
		return fmt.Errorf(
			"%w: %w: %d (current %d)",
			domain.ErrValidation,
			domain.ErrInvalidProgress,
			progress,
			job.Progress,
		)
	}

	job.Progress = progress
	job.Message = message
	return nil
}

// Complete implements store.JobStore.
func (s *JobStore) Complete(
	ctx context.Context,
	id string,
	message string,
	result map[string]any,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.mutableLocked(id)
	if err != nil {
		return err
	}

	job.Status = domain.JobStatusCompleted
	job.Progress = 100
	job.Message = message
	job.Result = result

	done := s.now()
	job.CompletedAt = &done
	return nil
}

// Fail implements store.JobStore.
func (s *JobStore) Fail(ctx context.Context, id string, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.mutableLocked(id)
	if err != nil {
		return err
	}

	job.Status = domain.JobStatusFailed
	job.Progress = 0
	job.Message = message

	done := s.now()
	job.CompletedAt = &done
	return nil
}

// mutableLocked returns the stored job if it exists and is still mutable.
// Callers must hold the mutex.
func (s *JobStore) mutableLocked(id string) (*domain.Job, error) {
	rec, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrJobNotFound
	}
	if rec.job.Status.Terminal() {
		return nil, store.ErrJobTerminal
	}
	return rec.job, nil
}
