package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ImportJobRepository handles import job persistence in MySQL
type ImportJobRepository struct {
	ds *Datastore
}

// NewImportJobRepository creates a new import job repository
func NewImportJobRepository(ds *Datastore) *ImportJobRepository {
	return &ImportJobRepository{ds: ds}
}

// Create creates a new import job
func (r *ImportJobRepository) Create(ctx context.Context, job *ImportJob) error {
	return r.ds.DB(ctx).Create(job).Error
}

// Get retrieves an import job by job_id, nil when not found
func (r *ImportJobRepository) Get(ctx context.Context, jobID string) (*ImportJob, error) {
	var job ImportJob
	err := r.ds.DB(ctx).Where("job_id = ?", jobID).First(&job).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get import job: %w", err)
	}
	return &job, nil
}

// UpdateFields updates specific fields of an import job by job_id
func (r *ImportJobRepository) UpdateFields(ctx context.Context, jobID string, updates map[string]interface{}) error {
	return r.ds.DB(ctx).Model(&ImportJob{}).
		Where("job_id = ?", jobID).
		Updates(updates).Error
}

// Reclaim re-stamps a RUNNING job so a redelivery can take over work from a
// worker that died mid-import. The updated_at guard means only one
// redelivery wins when several race for the same stalled job.
func (r *ImportJobRepository) Reclaim(ctx context.Context, jobID, runningStatus string, seenUpdatedAt time.Time) error {
	result := r.ds.DB(ctx).Model(&ImportJob{}).
		Where("job_id = ? AND status = ? AND updated_at = ?", jobID, runningStatus, seenUpdatedAt).
		Update("updated_at", time.Now().UTC())
	if result.Error != nil {
		return fmt.Errorf("failed to reclaim import job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("import job not reclaimable: job_id=%s", jobID)
	}
	return nil
}

// UpdateStatus updates job status with CAS so a retried queue task cannot
// restart a job that already completed
func (r *ImportJobRepository) UpdateStatus(ctx context.Context, jobID string, fromStatus, toStatus string) error {
	result := r.ds.DB(ctx).Model(&ImportJob{}).
		Where("job_id = ? AND status = ?", jobID, fromStatus).
		Update("status", toStatus)
	if result.Error != nil {
		return fmt.Errorf("failed to update import job status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("import job not found or status changed (expected: %s): job_id=%s", fromStatus, jobID)
	}
	return nil
}
