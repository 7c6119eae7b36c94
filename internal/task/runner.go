// Package task manages background job execution: a worker pool with a
// bounded queue drives simulated long-running jobs and records their
// lifecycle in the job store.
package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taskdeck/task-api/internal/domain"
	"github.com/taskdeck/task-api/internal/store"
)

// ErrQueueFull is returned by Submit when the bounded queue cannot accept
// another job. The job record is finalized as failed before this is returned.
var ErrQueueFull = errors.New("job queue is full, try again later")

// Job is a unit of background work processed by the runner.
type Job interface {
	// ID returns the tracked job record's identifier.
	ID() string

	// Execute runs the job to completion. The job itself records progress
	// and its terminal state in the job store; Execute returning an error
	// signals the runner to finalize the record as failed.
	Execute(ctx context.Context) error
}

// RunnerConfig holds configuration for the background runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process jobs.
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory job queue.
	QueueSize int

	// StepInterval is the duration of one unit of simulated work.
	StepInterval time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount:  4,
		QueueSize:    64,
		StepInterval: time.Second,
	}
}

// Runner owns background job execution. Jobs are fire-and-forget from the
// caller's perspective: Submit returns immediately and the job's own driver
// is the sole writer to its record afterwards.
type Runner struct {
	jobs       store.JobStore
	jobChan    chan Job
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
}

// NewRunner creates a new Runner backed by the given job store.
func NewRunner(jobs store.JobStore, config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultRunnerConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}
	if config.StepInterval <= 0 {
		config.StepInterval = DefaultRunnerConfig().StepInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		jobs:       jobs,
		jobChan:    make(chan Job, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With(slog.String("component", "runner")),
	}
}

// Start launches the worker goroutines.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
}

// Stop cancels in-flight jobs and waits for all workers to exit, then drains
// the queue and finalizes any never-started job as failed. Interrupted jobs
// fail through their own Execute error path, so no record is left reading
// running after the workers are gone.
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()

	for {
		select {
		case job := <-r.jobChan:
			r.failJob(job.ID(), "Task failed: runner stopped before execution", r.logger)
		default:
			return
		}
	}
}

// StartSimulation validates the duration, registers a job record, and
// enqueues the simulated work. It returns the job ID immediately without
// waiting for any of the work.
func (r *Runner) StartSimulation(ctx context.Context, duration int) (string, error) {
	if err := domain.ValidateJobDuration(duration); err != nil {
		return "", err
	}

	job, err := r.jobs.Create(
		ctx,
		fmt.Sprintf("Starting long-running task (duration: %ds)", duration),
	)
	if err != nil {
		return "", fmt.Errorf("failed to register job: %w", err)
	}

	sim := NewSimulationJob(job.ID, duration, r.config.StepInterval, r.jobs)

	if err := r.Submit(ctx, sim); err != nil {
		return "", err
	}
	return job.ID, nil
}

// Submit adds a job to the bounded queue. When the queue is full the job
// record is finalized as failed and ErrQueueFull is returned.
func (r *Runner) Submit(ctx context.Context, job Job) error {
	select {
	case r.jobChan <- job:
		return nil
	default:
		r.logger.Warn("job queue full, rejecting job", "job_id", job.ID())
		if err := r.jobs.Fail(ctx, job.ID(), "Task rejected: "+ErrQueueFull.Error()); err != nil {
			r.logger.Error("failed to finalize rejected job", "job_id", job.ID(), "error", err)
		}
		return ErrQueueFull
	}
}

// worker processes jobs from the queue until the runner is stopped.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case job, ok := <-r.jobChan:
			if !ok {
				return
			}
			r.processJob(job, id)
		}
	}
}

// processJob executes a single job, containing any failure as the job's
// terminal failed state. Failures never escape to crash the worker.
func (r *Runner) processJob(job Job, workerID int) {
	logger := r.logger.With(
		slog.String("job_id", job.ID()),
		slog.Int("worker_id", workerID),
	)

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("job panicked", "panic", rec)
			r.failJob(job.ID(), fmt.Sprintf("Task failed: %v", rec), logger)
		}
	}()

	logger.Info("processing job")

	if err := job.Execute(r.ctx); err != nil {
		logger.Error("job execution failed", "error", err)
		r.failJob(job.ID(), fmt.Sprintf("Task failed: %v", err), logger)
		return
	}

	logger.Info("job completed successfully")
}

func (r *Runner) failJob(id, message string, logger *slog.Logger) {
	err := r.jobs.Fail(context.Background(), id, message)
	if err != nil && !errors.Is(err, store.ErrJobTerminal) {
		logger.Error("failed to record job failure", "error", err)
	}
}
