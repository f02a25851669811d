package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TimesheetRepository handles timesheet persistence in MySQL
type TimesheetRepository struct {
	ds *Datastore
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(ds *Datastore) *TimesheetRepository {
	return &TimesheetRepository{ds: ds}
}

// Create creates a new timesheet
func (r *TimesheetRepository) Create(ctx context.Context, ts *Timesheet) error {
	return r.ds.DB(ctx).Create(ts).Error
}

// Get retrieves a timesheet by timesheet_id, nil when not found
func (r *TimesheetRepository) Get(ctx context.Context, timesheetID string) (*Timesheet, error) {
	var ts Timesheet
	err := r.ds.DB(ctx).Where("timesheet_id = ?", timesheetID).First(&ts).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	return &ts, nil
}

// List retrieves timesheets with optional filters, most recent work first
func (r *TimesheetRepository) List(ctx context.Context, userID, projectID, status string, from, to *time.Time, limit, offset int) ([]*Timesheet, error) {
	if limit <= 0 {
		limit = 100
	}

	query := r.ds.DB(ctx).Model(&Timesheet{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if from != nil {
		query = query.Where("work_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("work_date <= ?", *to)
	}

	var sheets []*Timesheet
	err := query.
		Order("work_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&sheets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	return sheets, nil
}

// UpdateFields updates specific fields of a timesheet by timesheet_id
func (r *TimesheetRepository) UpdateFields(ctx context.Context, timesheetID string, updates map[string]interface{}) error {
	return r.ds.DB(ctx).Model(&Timesheet{}).
		Where("timesheet_id = ?", timesheetID).
		Updates(updates).Error
}

// UpdateStatus updates timesheet status with CAS on the current status,
// preventing two approvers from racing on the same sheet
func (r *TimesheetRepository) UpdateStatus(ctx context.Context, timesheetID string, fromStatus, toStatus string) error {
	result := r.ds.DB(ctx).Model(&Timesheet{}).
		Where("timesheet_id = ? AND status = ?", timesheetID, fromStatus).
		Update("status", toStatus)
	if result.Error != nil {
		return fmt.Errorf("failed to update timesheet status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("timesheet not found or invalid status transition: timesheet_id=%s, from=%s, to=%s", timesheetID, fromStatus, toStatus)
	}
	return nil
}

// Delete deletes a timesheet
func (r *TimesheetRepository) Delete(ctx context.Context, timesheetID string) error {
	return r.ds.DB(ctx).Where("timesheet_id = ?", timesheetID).Delete(&Timesheet{}).Error
}
