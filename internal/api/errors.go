package api

import (
	"errors"
	"net/http"

	"github.com/taskdeck/task-api/internal/domain"
	"github.com/taskdeck/task-api/internal/store"
	"github.com/taskdeck/task-api/internal/task"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Validation errors
	case store.IsValidationError(err):
		return http.StatusBadRequest

	// Bounded queue rejection
	case errors.Is(err, task.ErrQueueFull):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Domain validation sentinels carry no internal
// detail, so their text is passed through for actionable responses.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrJobNotFound):
		return "Background task not found"

	case errors.Is(err, task.ErrQueueFull):
		return "Background task queue is full, try again later"

	case store.IsValidationError(err):
		return validationMessage(err)

	default:
		return "An unexpected error occurred"
	}
}

// validationMessage picks the user-facing text for a validation failure.
func validationMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrTitleEmpty,
		domain.ErrTitleTooLong,
		domain.ErrDescriptionTooLong,
		domain.ErrTooManyTags,
		domain.ErrInvalidStatus,
		domain.ErrInvalidPriority,
		domain.ErrEmptyPatch,
		domain.ErrFieldNotClearable,
		domain.ErrInvalidDuration,
		domain.ErrInvalidPage,
		domain.ErrInvalidPageSize,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Invalid request"
}
