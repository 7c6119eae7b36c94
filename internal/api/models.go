package api

import (
	"time"

	"github.com/taskdeck/task-api/internal/domain"
)

// Common request/response structures

// CreateTaskRequest defines the payload for the task creation endpoint.
// The domain constructor re-validates everything below; the tags exist so
// malformed payloads are rejected at the boundary with field-level detail.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=100"`
	Description string     `json:"description" validate:"max=500"`
	Status      string     `json:"status"      validate:"omitempty,oneof=active completed archived"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"        validate:"max=5"`
}

// Input converts the request into the domain creation input.
func (r CreateTaskRequest) Input() domain.TaskInput {
	return domain.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TaskStatus(r.Status),
		Priority:    domain.TaskPriority(r.Priority),
		DueDate:     r.DueDate,
		Tags:        r.Tags,
	}
}

// ListTasksResponse defines the paginated task listing envelope.
type ListTasksResponse struct {
	Tasks    []*domain.Task `json:"tasks"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// StatisticsResponse wraps the aggregate counts with a timestamp.
type StatisticsResponse struct {
	Statistics domain.TaskStatistics `json:"statistics"`
	Timestamp  time.Time             `json:"timestamp"`
}

// StartJobResponse acknowledges a background job start. The job keeps
// running after this response; poll its status endpoint for progress.
type StartJobResponse struct {
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
