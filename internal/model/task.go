package model

import "time"

// TaskStatus task status
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusOnHold     TaskStatus = "ON_HOLD"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// TaskPriority task priority
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "LOW"
	TaskPriorityMedium   TaskPriority = "MEDIUM"
	TaskPriorityHigh     TaskPriority = "HIGH"
	TaskPriorityCritical TaskPriority = "CRITICAL"
)

// Task work-breakdown item of a project.
// Weight is the task's planned share of the whole project in percent.
// Weights across a project are not required to sum to 100; the task-based
// progress figure reports whatever the weighted sum computes to.
type Task struct {
	ID           string       `json:"id"`
	ProjectID    string       `json:"project_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	PlannedStart time.Time    `json:"planned_start"`
	PlannedEnd   time.Time    `json:"planned_end"`
	Weight       float64      `json:"weight"`     // 0-100
	Completion   float64      `json:"completion"` // 0-100
	Priority     TaskPriority `json:"priority"`
	Status       TaskStatus   `json:"status"`
	AssigneeID   string       `json:"assignee_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// CreateTaskRequest create task request
type CreateTaskRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description,omitempty"`
	PlannedStart string  `json:"planned_start" binding:"required"` // YYYY-MM-DD
	PlannedEnd   string  `json:"planned_end" binding:"required"`   // YYYY-MM-DD
	Weight       float64 `json:"weight"`
	Priority     string  `json:"priority,omitempty"`
	AssigneeID   string  `json:"assignee_id,omitempty"`
}

// UpdateTaskRequest update task request, nil fields are left untouched
type UpdateTaskRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	PlannedStart *string  `json:"planned_start,omitempty"`
	PlannedEnd   *string  `json:"planned_end,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Priority     *string  `json:"priority,omitempty"`
	Status       *string  `json:"status,omitempty"`
	AssigneeID   *string  `json:"assignee_id,omitempty"`
}

// UpdateCompletionRequest update task completion percentage
type UpdateCompletionRequest struct {
	Completion float64 `json:"completion" binding:"min=0"`
}

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	switch TaskStatus(s) {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusOnHold,
		TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// ValidTaskPriority reports whether s is a known task priority.
func ValidTaskPriority(s string) bool {
	switch TaskPriority(s) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}
