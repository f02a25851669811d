package model

import "time"

// CostRequestStatus approval state of a cost request
type CostRequestStatus string

const (
	CostRequestStatusPending  CostRequestStatus = "PENDING"
	CostRequestStatusApproved CostRequestStatus = "APPROVED"
	CostRequestStatusRejected CostRequestStatus = "REJECTED"
)

// CostRequest a spend request raised against a project, decided by a manager
type CostRequest struct {
	ID          string            `json:"id"`
	ProjectID   string            `json:"project_id"`
	RequestedBy string            `json:"requested_by"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Reason      string            `json:"reason,omitempty"`
	Status      CostRequestStatus `json:"status"`
	DecidedBy   string            `json:"decided_by,omitempty"`
	DecidedAt   *time.Time        `json:"decided_at,omitempty"`
	Comment     string            `json:"comment,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CreateCostRequestRequest create cost request
type CreateCostRequestRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency,omitempty"`
	Reason   string  `json:"reason,omitempty"`
}

// DecideCostRequestRequest approve or reject a cost request
type DecideCostRequestRequest struct {
	Comment string `json:"comment,omitempty"`
}
