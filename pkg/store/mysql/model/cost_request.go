package model

import "time"

// CostRequest MySQL model for cost_requests table
type CostRequest struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestID   string     `gorm:"column:request_id;type:varchar(64);not null;uniqueIndex:idx_request_id_unique" json:"request_id"`
	ProjectID   string     `gorm:"column:project_id;type:varchar(64);not null;index:idx_cost_project" json:"project_id"`
	RequestedBy string     `gorm:"column:requested_by;type:varchar(64);not null" json:"requested_by"`
	Amount      float64    `gorm:"column:amount;type:decimal(14,2);not null" json:"amount"`
	Currency    string     `gorm:"column:currency;type:varchar(8);not null;default:'USD'" json:"currency"`
	Reason      string     `gorm:"column:reason;type:text" json:"reason"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:'PENDING';index:idx_cost_status" json:"status"`
	DecidedBy   string     `gorm:"column:decided_by;type:varchar(64)" json:"decided_by"`
	DecidedAt   *time.Time `gorm:"column:decided_at;type:datetime(3)" json:"decided_at"`
	Comment     string     `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt   time.Time  `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for CostRequest
func (CostRequest) TableName() string {
	return "cost_requests"
}
