package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CostRequestRepository handles cost request persistence in MySQL
type CostRequestRepository struct {
	ds *Datastore
}

// NewCostRequestRepository creates a new cost request repository
func NewCostRequestRepository(ds *Datastore) *CostRequestRepository {
	return &CostRequestRepository{ds: ds}
}

// Create creates a new cost request
func (r *CostRequestRepository) Create(ctx context.Context, cr *CostRequest) error {
	return r.ds.DB(ctx).Create(cr).Error
}

// Get retrieves a cost request by request_id, nil when not found
func (r *CostRequestRepository) Get(ctx context.Context, requestID string) (*CostRequest, error) {
	var cr CostRequest
	err := r.ds.DB(ctx).Where("request_id = ?", requestID).First(&cr).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cost request: %w", err)
	}
	return &cr, nil
}

// List retrieves cost requests with optional project/status filters, newest first
func (r *CostRequestRepository) List(ctx context.Context, projectID, status string, limit, offset int) ([]*CostRequest, error) {
	if limit <= 0 {
		limit = 50
	}

	query := r.ds.DB(ctx).Model(&CostRequest{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []*CostRequest
	err := query.
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cost requests: %w", err)
	}
	return requests, nil
}

// Decide transitions a PENDING request to APPROVED or REJECTED with CAS on
// status so two approvers cannot both decide the same request
func (r *CostRequestRepository) Decide(ctx context.Context, requestID, toStatus, decidedBy, comment string, decidedAt time.Time) error {
	result := r.ds.DB(ctx).Model(&CostRequest{}).
		Where("request_id = ? AND status = ?", requestID, "PENDING").
		Updates(map[string]interface{}{
			"status":     toStatus,
			"decided_by": decidedBy,
			"decided_at": decidedAt,
			"comment":    comment,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to decide cost request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("cost request not found or already decided: request_id=%s", requestID)
	}
	return nil
}
