package model

import (
	"time"

	"gorm.io/gorm"
)

// Task MySQL model for tasks table. Soft-deleted because timesheets keep
// referencing tasks after they are removed from the breakdown.
type Task struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID       string         `gorm:"column:task_id;type:varchar(64);not null;uniqueIndex:idx_task_id_unique" json:"task_id"`
	ProjectID    string         `gorm:"column:project_id;type:varchar(64);not null;index:idx_task_project,priority:1" json:"project_id"`
	Name         string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description  string         `gorm:"column:description;type:text" json:"description"`
	PlannedStart time.Time      `gorm:"column:planned_start;type:date;not null" json:"planned_start"`
	PlannedEnd   time.Time      `gorm:"column:planned_end;type:date;not null" json:"planned_end"`
	Weight       float64        `gorm:"column:weight;type:decimal(6,2);not null;default:0" json:"weight"`
	Completion   float64        `gorm:"column:completion;type:decimal(6,2);not null;default:0" json:"completion"`
	Priority     string         `gorm:"column:priority;type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Status       string         `gorm:"column:status;type:varchar(50);not null;index:idx_task_project,priority:2" json:"status"`
	AssigneeID   string         `gorm:"column:assignee_id;type:varchar(64);index:idx_task_assignee" json:"assignee_id"`
	CreatedAt    time.Time      `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}
