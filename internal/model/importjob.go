package model

import (
	"encoding/json"
	"time"
)

// ImportJobStatus import job state
type ImportJobStatus string

const (
	ImportJobStatusPending   ImportJobStatus = "PENDING"
	ImportJobStatusRunning   ImportJobStatus = "RUNNING"
	ImportJobStatusCompleted ImportJobStatus = "COMPLETED"
	ImportJobStatusFailed    ImportJobStatus = "FAILED"
)

// RowError a CSV row that failed to parse. Row is 1-based and counts data
// rows, not the header.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportJob tracks an asynchronous CSV progress import
type ImportJob struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"project_id"`
	Status       ImportJobStatus `json:"status"`
	TotalRows    int             `json:"total_rows"`
	ImportedRows int             `json:"imported_rows"`
	FailedRows   int             `json:"failed_rows"`
	RowErrors    []RowError      `json:"row_errors,omitempty"`
	Error        string          `json:"error,omitempty"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ImportJobPayload asynq task payload for a progress import
type ImportJobPayload struct {
	JobID      string `json:"job_id"`
	ProjectID  string `json:"project_id"`
	ReportedBy string `json:"reported_by"`
	CSV        string `json:"csv"`
}

// ToJSON converts payload to JSON bytes
func (p *ImportJobPayload) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}

// FromJSON converts JSON bytes to payload
func (p *ImportJobPayload) FromJSON(data []byte) error {
	return json.Unmarshal(data, p)
}
