package service

import (
	"context"
	"fmt"
	"time"

	"planpulse/internal/model"
	"planpulse/pkg/store/mysql"

	"github.com/google/uuid"
)

// TimesheetService handles timesheet business logic
type TimesheetService struct {
	timesheetRepo *mysql.TimesheetRepository
	taskRepo      *mysql.TaskRepository
}

// NewTimesheetService creates a new timesheet service
func NewTimesheetService(timesheetRepo *mysql.TimesheetRepository, taskRepo *mysql.TaskRepository) *TimesheetService {
	return &TimesheetService{
		timesheetRepo: timesheetRepo,
		taskRepo:      taskRepo,
	}
}

// CreateTimesheet records a DRAFT timesheet for the calling user
func (s *TimesheetService) CreateTimesheet(ctx context.Context, userID string, req *model.CreateTimesheetRequest) (*model.Timesheet, error) {
	task, err := s.taskRepo.Get(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task %s", ErrNotFound, req.TaskID)
	}

	workDate, err := time.Parse(dateLayout, req.WorkDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid work_date: %v", ErrInvalidInput, err)
	}
	if req.Hours <= 0 || req.Hours > 24 {
		return nil, fmt.Errorf("%w: hours must be in (0, 24]", ErrInvalidInput)
	}

	ts := &mysql.Timesheet{
		TimesheetID: uuid.NewString(),
		UserID:      userID,
		TaskID:      task.TaskID,
		ProjectID:   task.ProjectID,
		WorkDate:    workDate,
		Hours:       req.Hours,
		Note:        req.Note,
		Status:      string(model.TimesheetStatusDraft),
	}
	if err := s.timesheetRepo.Create(ctx, ts); err != nil {
		return nil, fmt.Errorf("failed to create timesheet: %w", err)
	}
	return mysql.ToTimesheetDomain(ts), nil
}

// GetTimesheet retrieves a timesheet by ID
func (s *TimesheetService) GetTimesheet(ctx context.Context, timesheetID string) (*model.Timesheet, error) {
	ts, err := s.timesheetRepo.Get(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	if ts == nil {
		return nil, fmt.Errorf("%w: timesheet %s", ErrNotFound, timesheetID)
	}
	return mysql.ToTimesheetDomain(ts), nil
}

// ListTimesheets lists timesheets with optional filters
func (s *TimesheetService) ListTimesheets(ctx context.Context, query *model.TimesheetListQuery, limit, offset int) ([]*model.Timesheet, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var from, to *time.Time
	if query.From != "" {
		d, err := time.Parse(dateLayout, query.From)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from: %v", ErrInvalidInput, err)
		}
		from = &d
	}
	if query.To != "" {
		d, err := time.Parse(dateLayout, query.To)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to: %v", ErrInvalidInput, err)
		}
		to = &d
	}

	sheets, err := s.timesheetRepo.List(ctx, query.UserID, query.ProjectID, query.Status, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}

	result := make([]*model.Timesheet, len(sheets))
	for i, ts := range sheets {
		result[i] = mysql.ToTimesheetDomain(ts)
	}
	return result, nil
}

// UpdateTimesheet edits a timesheet, only allowed while it is still a draft
// owned by the caller.
func (s *TimesheetService) UpdateTimesheet(ctx context.Context, timesheetID, userID string, req *model.UpdateTimesheetRequest) (*model.Timesheet, error) {
	existing, err := s.timesheetRepo.Get(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: timesheet %s", ErrNotFound, timesheetID)
	}
	if existing.UserID != userID {
		return nil, fmt.Errorf("%w: timesheet belongs to another user", ErrForbidden)
	}
	if existing.Status != string(model.TimesheetStatusDraft) {
		return nil, fmt.Errorf("%w: only draft timesheets can be edited", ErrConflict)
	}

	updates := map[string]interface{}{}
	if req.WorkDate != nil {
		d, err := time.Parse(dateLayout, *req.WorkDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid work_date: %v", ErrInvalidInput, err)
		}
		updates["work_date"] = d
	}
	if req.Hours != nil {
		if *req.Hours <= 0 || *req.Hours > 24 {
			return nil, fmt.Errorf("%w: hours must be in (0, 24]", ErrInvalidInput)
		}
		updates["hours"] = *req.Hours
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}

	if len(updates) > 0 {
		if err := s.timesheetRepo.UpdateFields(ctx, timesheetID, updates); err != nil {
			return nil, fmt.Errorf("failed to update timesheet: %w", err)
		}
	}
	return s.GetTimesheet(ctx, timesheetID)
}

// Submit moves a draft timesheet to SUBMITTED
func (s *TimesheetService) Submit(ctx context.Context, timesheetID, userID string) (*model.Timesheet, error) {
	existing, err := s.timesheetRepo.Get(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: timesheet %s", ErrNotFound, timesheetID)
	}
	if existing.UserID != userID {
		return nil, fmt.Errorf("%w: timesheet belongs to another user", ErrForbidden)
	}

	if err := s.timesheetRepo.UpdateStatus(ctx, timesheetID,
		string(model.TimesheetStatusDraft), string(model.TimesheetStatusSubmitted)); err != nil {
		return nil, fmt.Errorf("%w: timesheet is not a draft", ErrConflict)
	}
	return s.GetTimesheet(ctx, timesheetID)
}

// Approve moves a submitted timesheet to APPROVED
func (s *TimesheetService) Approve(ctx context.Context, timesheetID string) (*model.Timesheet, error) {
	return s.decide(ctx, timesheetID, model.TimesheetStatusApproved)
}

// Reject moves a submitted timesheet back to REJECTED
func (s *TimesheetService) Reject(ctx context.Context, timesheetID string) (*model.Timesheet, error) {
	return s.decide(ctx, timesheetID, model.TimesheetStatusRejected)
}

func (s *TimesheetService) decide(ctx context.Context, timesheetID string, to model.TimesheetStatus) (*model.Timesheet, error) {
	existing, err := s.timesheetRepo.Get(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: timesheet %s", ErrNotFound, timesheetID)
	}

	if err := s.timesheetRepo.UpdateStatus(ctx, timesheetID,
		string(model.TimesheetStatusSubmitted), string(to)); err != nil {
		return nil, fmt.Errorf("%w: timesheet is not awaiting approval", ErrConflict)
	}
	return s.GetTimesheet(ctx, timesheetID)
}
