package store

import (
	"errors"
	"fmt"

	"github.com/taskdeck/task-api/internal/domain"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is a generic version of the entity-specific not found
	// errors (e.g., ErrTaskNotFound, ErrJobNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrTaskNotFound indicates that the requested task does not exist in the store.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrJobNotFound indicates that the requested background job does not
	// exist in the store.
	ErrJobNotFound = fmt.Errorf("%w: background job", ErrNotFound)

	// ErrJobTerminal is returned when an update targets a job that has
	// already reached a terminal state. Terminal jobs are immutable.
	ErrJobTerminal = errors.New("job already in terminal state")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if the error is a domain validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}
