package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RowErrorList per-row import failures (stored in JSON)
type RowErrorList []RowErrorRecord

// RowErrorRecord one failed CSV row
type RowErrorRecord struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportJob MySQL model for import_jobs table
type ImportJob struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID        string       `gorm:"column:job_id;type:varchar(64);not null;uniqueIndex:idx_job_id_unique" json:"job_id"`
	ProjectID    string       `gorm:"column:project_id;type:varchar(64);not null;index:idx_import_project" json:"project_id"`
	Status       string       `gorm:"column:status;type:varchar(20);not null;default:'PENDING';index:idx_import_status" json:"status"`
	TotalRows    int          `gorm:"column:total_rows;not null;default:0" json:"total_rows"`
	ImportedRows int          `gorm:"column:imported_rows;not null;default:0" json:"imported_rows"`
	FailedRows   int          `gorm:"column:failed_rows;not null;default:0" json:"failed_rows"`
	RowErrors    RowErrorList `gorm:"column:row_errors;type:json" json:"row_errors"`
	Error        string       `gorm:"column:error;type:text" json:"error"`
	CreatedBy    string       `gorm:"column:created_by;type:varchar(64);not null" json:"created_by"`
	CreatedAt    time.Time    `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for ImportJob
func (ImportJob) TableName() string {
	return "import_jobs"
}

// Value implements driver.Valuer interface for RowErrorList
// This allows GORM to convert RowErrorList to JSON string for database storage
func (l RowErrorList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for RowErrorList
// This allows GORM to convert JSON string from database to RowErrorList
func (l *RowErrorList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to scan RowErrorList: unsupported type %T", value)
	}

	var records []RowErrorRecord
	if err := json.Unmarshal(bytes, &records); err != nil {
		return fmt.Errorf("failed to unmarshal RowErrorList: %w", err)
	}

	*l = records
	return nil
}
