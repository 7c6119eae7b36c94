// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrTitleEmpty is returned when a task title is empty after trimming.
	ErrTitleEmpty = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a task title exceeds 100 characters.
	ErrTitleTooLong = errors.New("title cannot exceed 100 characters")

	// ErrDescriptionTooLong is returned when a description exceeds 500 characters.
	ErrDescriptionTooLong = errors.New("description cannot exceed 500 characters")

	// ErrTooManyTags is returned when a task carries more than 5 tags
	// after normalization.
	ErrTooManyTags = errors.New("maximum 5 tags allowed")

	// ErrInvalidStatus is returned when a task status is not a known value.
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrInvalidPriority is returned when a task priority is not a known value.
	ErrInvalidPriority = errors.New("invalid task priority")

	// ErrEmptyPatch is returned when a partial update supplies no fields at all.
	ErrEmptyPatch = errors.New("no fields provided")

	// ErrFieldNotClearable is returned when a patch sets a required field
	// to an explicit null.
	ErrFieldNotClearable = errors.New("field cannot be cleared")

	// ErrInvalidDuration is returned when a background job duration is
	// outside the 1-60 second range.
	ErrInvalidDuration = errors.New("duration must be between 1 and 60 seconds")

	// ErrInvalidPage is returned when a page number is less than 1.
	ErrInvalidPage = errors.New("page must be at least 1")

	// ErrInvalidPageSize is returned when a page size is outside 1-100.
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")

	// ErrInvalidProgress is returned when a job progress value is outside
	// 0-100 or would move backwards while the job is running.
	ErrInvalidProgress = errors.New("invalid progress value")
)
