package task

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/taskdeck/task-api/internal/store"
)

// SimulationJob simulates a long-running operation: duration equal unit
// steps, each followed by a progress update, then one terminal completed
// update carrying a result payload. It is the sole writer to its job record
// after registration, and it sleeps between steps without holding any lock.
type SimulationJob struct {
	id           string
	duration     int
	stepInterval time.Duration
	jobs         store.JobStore
}

var _ Job = (*SimulationJob)(nil)

// NewSimulationJob creates a simulation over duration unit steps.
func NewSimulationJob(
	id string,
	duration int,
	stepInterval time.Duration,
	jobs store.JobStore,
) *SimulationJob {
	return &SimulationJob{
		id:           id,
		duration:     duration,
		stepInterval: stepInterval,
		jobs:         jobs,
	}
}

// ID implements Job.
func (j *SimulationJob) ID() string {
	return j.id
}

// Execute implements Job. Each elapsed unit commits one progress update;
// after the final step the job is completed with a summary result.
func (j *SimulationJob) Execute(ctx context.Context) error {
	for step := 1; step <= j.duration; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(j.stepInterval):
		}

		progress := int(math.Round(float64(step) / float64(j.duration) * 100))
		err := j.jobs.RecordProgress(
			ctx,
			j.id,
			progress,
			fmt.Sprintf("Processing step %d/%d", step, j.duration),
		)
		if err != nil {
			return fmt.Errorf("failed to record progress at step %d: %w", step, err)
		}
	}

	result := map[string]any{
		"processed_items": j.duration,
		"success":         true,
		"completion_time": time.Now().UTC().Format(time.RFC3339),
	}
	if err := j.jobs.Complete(ctx, j.id, "Task completed successfully", result); err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}
