package domain

import (
	"fmt"
	"time"
)

// JobStatus represents the lifecycle state of a background job.
type JobStatus string

// Possible job status values.
const (
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Terminal reports whether the status permits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Duration bounds for background jobs, in seconds of simulated work.
const (
	MinJobDuration = 1
	MaxJobDuration = 60
)

// ValidateJobDuration checks the simulated work duration against its bounds.
func ValidateJobDuration(seconds int) error {
	if seconds < MinJobDuration || seconds > MaxJobDuration {
		return fmt.Errorf("%w: %w: %d", ErrValidation, ErrInvalidDuration, seconds)
	}
	return nil
}

// Job represents one asynchronous operation tracked by the job store.
// Once the status is terminal no field may change; the store enforces this.
type Job struct {
	ID          string         `json:"task_id"`
	Status      JobStatus      `json:"status"`
	Progress    int            `json:"progress"`
	Message     string         `json:"message"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Result      map[string]any `json:"result,omitempty"`
}

// Clone returns a deep copy so stored records are never aliased by callers.
func (j *Job) Clone() *Job {
	clone := *j
	if j.CompletedAt != nil {
		done := *j.CompletedAt
		clone.CompletedAt = &done
	}
	if j.Result != nil {
		clone.Result = make(map[string]any, len(j.Result))
		for k, v := range j.Result {
			clone.Result[k] = v
		}
	}
	return &clone
}
