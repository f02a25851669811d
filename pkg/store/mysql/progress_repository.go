package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ProgressRepository handles progress entry persistence in MySQL
type ProgressRepository struct {
	ds *Datastore
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(ds *Datastore) *ProgressRepository {
	return &ProgressRepository{ds: ds}
}

// Create creates a new progress entry
func (r *ProgressRepository) Create(ctx context.Context, entry *ProgressEntry) error {
	return r.ds.DB(ctx).Create(entry).Error
}

// CreateBatch inserts a batch of entries, used by CSV import
func (r *ProgressRepository) CreateBatch(ctx context.Context, entries []*ProgressEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.ds.DB(ctx).CreateInBatches(entries, 100).Error
}

// Get retrieves a progress entry by entry_id, nil when not found
func (r *ProgressRepository) Get(ctx context.Context, entryID string) (*ProgressEntry, error) {
	var entry ProgressEntry
	err := r.ds.DB(ctx).Where("entry_id = ?", entryID).First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get progress entry: %w", err)
	}
	return &entry, nil
}

// ListByProject retrieves a project's entries, oldest first, with an
// optional inclusive date range. Creation order breaks same-day ties so the
// cumulative series and latest-report lookups stay deterministic.
func (r *ProgressRepository) ListByProject(ctx context.Context, projectID string, from, to *time.Time) ([]*ProgressEntry, error) {
	query := r.ds.DB(ctx).Where("project_id = ?", projectID)
	if from != nil {
		query = query.Where("entry_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("entry_date <= ?", *to)
	}

	var entries []*ProgressEntry
	err := query.Order("entry_date ASC, id ASC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list progress entries: %w", err)
	}
	return entries, nil
}

// UpdateFields updates specific fields of an entry by entry_id
func (r *ProgressRepository) UpdateFields(ctx context.Context, entryID string, updates map[string]interface{}) error {
	result := r.ds.DB(ctx).Model(&ProgressEntry{}).
		Where("entry_id = ?", entryID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update progress entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("progress entry not found: entry_id=%s", entryID)
	}
	return nil
}

// Delete deletes a progress entry
func (r *ProgressRepository) Delete(ctx context.Context, entryID string) error {
	return r.ds.DB(ctx).Where("entry_id = ?", entryID).Delete(&ProgressEntry{}).Error
}
