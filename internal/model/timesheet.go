package model

import "time"

// TimesheetStatus timesheet approval state
type TimesheetStatus string

const (
	TimesheetStatusDraft     TimesheetStatus = "DRAFT"
	TimesheetStatusSubmitted TimesheetStatus = "SUBMITTED"
	TimesheetStatusApproved  TimesheetStatus = "APPROVED"
	TimesheetStatusRejected  TimesheetStatus = "REJECTED"
)

// Timesheet one user's hours on one task for one day
type Timesheet struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	TaskID    string          `json:"task_id"`
	ProjectID string          `json:"project_id"`
	WorkDate  time.Time       `json:"work_date"`
	Hours     float64         `json:"hours"` // 0-24
	Note      string          `json:"note,omitempty"`
	Status    TimesheetStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateTimesheetRequest create timesheet request
type CreateTimesheetRequest struct {
	TaskID   string  `json:"task_id" binding:"required"`
	WorkDate string  `json:"work_date" binding:"required"` // YYYY-MM-DD
	Hours    float64 `json:"hours" binding:"required,gt=0,max=24"`
	Note     string  `json:"note,omitempty"`
}

// UpdateTimesheetRequest update timesheet request, nil fields are left untouched
type UpdateTimesheetRequest struct {
	WorkDate *string  `json:"work_date,omitempty"`
	Hours    *float64 `json:"hours,omitempty"`
	Note     *string  `json:"note,omitempty"`
}

// TimesheetListQuery list timesheets query parameters
type TimesheetListQuery struct {
	UserID    string `form:"user_id"`
	ProjectID string `form:"project_id"`
	Status    string `form:"status"`
	From      string `form:"from"` // YYYY-MM-DD
	To        string `form:"to"`   // YYYY-MM-DD
}
