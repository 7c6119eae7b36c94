package domain

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Possible task status values.
const (
	TaskStatusActive    TaskStatus = "active"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusArchived  TaskStatus = "archived"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusActive, TaskStatusCompleted, TaskStatusArchived:
		return true
	}
	return false
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Possible task priority values.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task title and tag constraints.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxTags              = 5
)

// Task represents one user-visible unit of work. IDs and timestamps are
// assigned by the store, never by callers.
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Tags        []string     `json:"tags"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskInput holds the caller-supplied fields for creating a task.
// Zero-value Status and Priority receive the documented defaults.
type TaskInput struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	Tags        []string
}

// NewTask validates and normalizes the input and returns a Task without
// an ID or timestamps; the store assigns those under its own lock.
func NewTask(in TaskInput) (*Task, error) {
	title, err := NormalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}

	if len(in.Description) > MaxDescriptionLength {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrDescriptionTooLong)
	}

	status := in.Status
	if status == "" {
		status = TaskStatusActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidStatus, in.Status)
	}

	priority := in.Priority
	if priority == "" {
		priority = TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidPriority, in.Priority)
	}

	tags, err := NormalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	return &Task{
		Title:       title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		Tags:        tags,
	}, nil
}

// NormalizeTitle trims the title and enforces the 1-100 character limit.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: %w", ErrValidation, ErrTitleEmpty)
	}
	if len(title) > MaxTitleLength {
		return "", fmt.Errorf("%w: %w", ErrValidation, ErrTitleTooLong)
	}
	return title, nil
}

// CleanTags trims and lowercases each tag and drops empty ones. It applies
// no count limit: the MaxTags bound constrains a task's own tag list, not a
// caller's requested filter set.
func CleanTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		normalized = append(normalized, tag)
	}
	return normalized
}

// NormalizeTags cleans the tags and enforces the per-task tag limit on the
// normalized result.
func NormalizeTags(tags []string) ([]string, error) {
	normalized := CleanTags(tags)
	if len(normalized) > MaxTags {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrTooManyTags)
	}
	return normalized, nil
}

// HasAnyTag reports whether the task carries at least one of the given tags.
// Tags are compared in their normalized form.
func (t *Task) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range t.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy so stored records are never aliased by callers.
// Tags stay a non-nil slice so an empty tag list serializes as [], not null.
func (t *Task) Clone() *Task {
	clone := *t
	if t.DueDate != nil {
		due := *t.DueDate
		clone.DueDate = &due
	}
	clone.Tags = make([]string, len(t.Tags))
	copy(clone.Tags, t.Tags)
	return &clone
}

// TaskStatistics holds aggregate counts over the current task map.
// Active + Completed + Archived always equals Total.
type TaskStatistics struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Archived  int `json:"archived"`
}
