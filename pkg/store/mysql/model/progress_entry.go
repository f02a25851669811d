package model

import "time"

// ProgressEntry MySQL model for progress_entries table. Planned and Actual
// are nullable on purpose: NULL means "not reported", which is different
// from a reported zero.
type ProgressEntry struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EntryID     string    `gorm:"column:entry_id;type:varchar(64);not null;uniqueIndex:idx_entry_id_unique" json:"entry_id"`
	ProjectID   string    `gorm:"column:project_id;type:varchar(64);not null;index:idx_entry_project_date,priority:1" json:"project_id"`
	EntryDate   time.Time `gorm:"column:entry_date;type:date;not null;index:idx_entry_project_date,priority:2" json:"entry_date"`
	Progress    float64   `gorm:"column:progress;type:decimal(6,2);not null;default:0" json:"progress"`
	Planned     *float64  `gorm:"column:planned;type:decimal(6,2)" json:"planned"`
	Actual      *float64  `gorm:"column:actual;type:decimal(6,2)" json:"actual"`
	Status      string    `gorm:"column:status;type:varchar(50);not null;default:'ON_TRACK'" json:"status"`
	Milestone   string    `gorm:"column:milestone;type:varchar(255)" json:"milestone"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	ReportedBy  string    `gorm:"column:reported_by;type:varchar(64)" json:"reported_by"`
	CreatedAt   time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for ProgressEntry
func (ProgressEntry) TableName() string {
	return "progress_entries"
}
