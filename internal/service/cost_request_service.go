package service

import (
	"context"
	"fmt"
	"time"

	"planpulse/internal/model"
	"planpulse/pkg/store/mysql"

	"github.com/google/uuid"
)

// CostRequestService handles spend request business logic
type CostRequestService struct {
	costRepo    *mysql.CostRequestRepository
	projectRepo *mysql.ProjectRepository
}

// NewCostRequestService creates a new cost request service
func NewCostRequestService(costRepo *mysql.CostRequestRepository, projectRepo *mysql.ProjectRepository) *CostRequestService {
	return &CostRequestService{
		costRepo:    costRepo,
		projectRepo: projectRepo,
	}
}

// CreateCostRequest raises a PENDING spend request against a project
func (s *CostRequestService) CreateCostRequest(ctx context.Context, projectID, requestedBy string, req *model.CreateCostRequestRequest) (*model.CostRequest, error) {
	project, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	cr := &mysql.CostRequest{
		RequestID:   uuid.NewString(),
		ProjectID:   projectID,
		RequestedBy: requestedBy,
		Amount:      req.Amount,
		Currency:    currency,
		Reason:      req.Reason,
		Status:      string(model.CostRequestStatusPending),
	}
	if err := s.costRepo.Create(ctx, cr); err != nil {
		return nil, fmt.Errorf("failed to create cost request: %w", err)
	}
	return mysql.ToCostRequestDomain(cr), nil
}

// GetCostRequest retrieves a cost request by ID
func (s *CostRequestService) GetCostRequest(ctx context.Context, requestID string) (*model.CostRequest, error) {
	cr, err := s.costRepo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if cr == nil {
		return nil, fmt.Errorf("%w: cost request %s", ErrNotFound, requestID)
	}
	return mysql.ToCostRequestDomain(cr), nil
}

// ListCostRequests lists cost requests with optional project and status filters
func (s *CostRequestService) ListCostRequests(ctx context.Context, projectID, status string, limit, offset int) ([]*model.CostRequest, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	requests, err := s.costRepo.List(ctx, projectID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost requests: %w", err)
	}

	result := make([]*model.CostRequest, len(requests))
	for i, cr := range requests {
		result[i] = mysql.ToCostRequestDomain(cr)
	}
	return result, nil
}

// Approve approves a pending cost request
func (s *CostRequestService) Approve(ctx context.Context, requestID, decidedBy, comment string) (*model.CostRequest, error) {
	return s.decide(ctx, requestID, model.CostRequestStatusApproved, decidedBy, comment)
}

// Reject rejects a pending cost request
func (s *CostRequestService) Reject(ctx context.Context, requestID, decidedBy, comment string) (*model.CostRequest, error) {
	return s.decide(ctx, requestID, model.CostRequestStatusRejected, decidedBy, comment)
}

func (s *CostRequestService) decide(ctx context.Context, requestID string, to model.CostRequestStatus, decidedBy, comment string) (*model.CostRequest, error) {
	existing, err := s.costRepo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: cost request %s", ErrNotFound, requestID)
	}
	if existing.RequestedBy == decidedBy {
		return nil, fmt.Errorf("%w: requester cannot decide their own request", ErrForbidden)
	}

	if err := s.costRepo.Decide(ctx, requestID, string(to), decidedBy, comment, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("%w: cost request is not pending", ErrConflict)
	}
	return s.GetCostRequest(ctx, requestID)
}
