package model

import "time"

// Timesheet MySQL model for timesheets table
type Timesheet struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TimesheetID string    `gorm:"column:timesheet_id;type:varchar(64);not null;uniqueIndex:idx_timesheet_id_unique" json:"timesheet_id"`
	UserID      string    `gorm:"column:user_id;type:varchar(64);not null;index:idx_timesheet_user_date,priority:1" json:"user_id"`
	TaskID      string    `gorm:"column:task_id;type:varchar(64);not null;index:idx_timesheet_task" json:"task_id"`
	ProjectID   string    `gorm:"column:project_id;type:varchar(64);not null;index:idx_timesheet_project" json:"project_id"`
	WorkDate    time.Time `gorm:"column:work_date;type:date;not null;index:idx_timesheet_user_date,priority:2" json:"work_date"`
	Hours       float64   `gorm:"column:hours;type:decimal(4,2);not null" json:"hours"`
	Note        string    `gorm:"column:note;type:text" json:"note"`
	Status      string    `gorm:"column:status;type:varchar(20);not null;default:'DRAFT';index:idx_timesheet_status" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for Timesheet
func (Timesheet) TableName() string {
	return "timesheets"
}
