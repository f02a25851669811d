package model

import (
	"time"

	"gorm.io/gorm"
)

// Project MySQL model for projects table
type Project struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID   string         `gorm:"column:project_id;type:varchar(64);not null;uniqueIndex:idx_project_id_unique" json:"project_id"`
	Name        string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Status      string         `gorm:"column:status;type:varchar(50);not null;index:idx_project_status" json:"status"`
	StartDate   *time.Time     `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate     *time.Time     `gorm:"column:end_date;type:date" json:"end_date"`
	Budget      *float64       `gorm:"column:budget;type:decimal(14,2)" json:"budget"`
	ManagerID   string         `gorm:"column:manager_id;type:varchar(64);index:idx_project_manager" json:"manager_id"`
	CreatedAt   time.Time      `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}
