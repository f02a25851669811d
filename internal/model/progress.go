package model

import "time"

// EntryStatus progress report status
type EntryStatus string

const (
	EntryStatusOnTrack  EntryStatus = "ON_TRACK"
	EntryStatusBehind   EntryStatus = "BEHIND_SCHEDULE"
	EntryStatusAhead    EntryStatus = "AHEAD_OF_SCHEDULE"
	EntryStatusComplete EntryStatus = "COMPLETED"
	EntryStatusOnHold   EntryStatus = "ON_HOLD"
)

// ProgressEntry manually reported project-level progress.
// Progress is the reporter's self-assessed overall completion. Planned and
// Actual are optional schedule-baseline figures; when Actual is absent the
// cumulative series falls back to Progress. A nil optional field means
// "not reported", which is distinct from a reported zero.
type ProgressEntry struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"project_id"`
	Date        time.Time   `json:"date"`
	Progress    float64     `json:"progress"` // 0-100
	Planned     *float64    `json:"planned,omitempty"`
	Actual      *float64    `json:"actual,omitempty"`
	Status      EntryStatus `json:"status"`
	Milestone   string      `json:"milestone,omitempty"`
	Description string      `json:"description,omitempty"`
	ReportedBy  string      `json:"reported_by,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// SCurvePoint one point of the cumulative planned-vs-actual series.
// Planned and Actual are running sums clamped to [0,100]; Progress is the
// instantaneous value from the source entry. Derived, never persisted.
type SCurvePoint struct {
	Date        time.Time   `json:"date"`
	Planned     float64     `json:"planned"`
	Actual      float64     `json:"actual"`
	Progress    float64     `json:"progress"`
	Status      EntryStatus `json:"status"`
	Milestone   string      `json:"milestone,omitempty"`
	Description string      `json:"description,omitempty"`
}

// ProjectMetrics derived dashboard summary for one project.
type ProjectMetrics struct {
	ProjectID         string  `json:"project_id"`
	TotalTasks        int     `json:"total_tasks"`
	CompletedTasks    int     `json:"completed_tasks"`
	InProgressTasks   int     `json:"in_progress_tasks"`
	NotStartedTasks   int     `json:"not_started_tasks"`
	TaskBasedProgress float64 `json:"task_based_progress"`
	ManualProgress    float64 `json:"manual_progress"`
	OverallProgress   float64 `json:"overall_progress"`
	WeightTotal       float64 `json:"weight_total"`
	DaysRemaining     *int    `json:"days_remaining"`
	IsOnTrack         bool    `json:"is_on_track"`
	Variance          float64 `json:"variance"`
}

// CreateProgressRequest create progress entry request
type CreateProgressRequest struct {
	Date        string   `json:"date" binding:"required"` // YYYY-MM-DD
	Progress    float64  `json:"progress"`
	Planned     *float64 `json:"planned,omitempty"`
	Actual      *float64 `json:"actual,omitempty"`
	Status      string   `json:"status,omitempty"`
	Milestone   string   `json:"milestone,omitempty"`
	Description string   `json:"description,omitempty"`
}

// UpdateProgressRequest update progress entry request, nil fields are left untouched
type UpdateProgressRequest struct {
	Date        *string  `json:"date,omitempty"`
	Progress    *float64 `json:"progress,omitempty"`
	Planned     *float64 `json:"planned,omitempty"`
	Actual      *float64 `json:"actual,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Milestone   *string  `json:"milestone,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// ProgressListQuery optional inclusive date-range filter
type ProgressListQuery struct {
	From string `form:"from"` // YYYY-MM-DD
	To   string `form:"to"`   // YYYY-MM-DD
}

// ValidEntryStatus reports whether s is a known progress report status.
func ValidEntryStatus(s string) bool {
	switch EntryStatus(s) {
	case EntryStatusOnTrack, EntryStatusBehind, EntryStatusAhead,
		EntryStatusComplete, EntryStatusOnHold:
		return true
	}
	return false
}
