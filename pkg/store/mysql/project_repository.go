package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ProjectRepository handles project persistence in MySQL
type ProjectRepository struct {
	ds *Datastore
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(ds *Datastore) *ProjectRepository {
	return &ProjectRepository{ds: ds}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, project *Project) error {
	return r.ds.DB(ctx).Create(project).Error
}

// Get retrieves a project by project_id, nil when not found
func (r *ProjectRepository) Get(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	err := r.ds.DB(ctx).Where("project_id = ?", projectID).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// List retrieves projects with optional status/manager filters, newest first
func (r *ProjectRepository) List(ctx context.Context, status, managerID string, limit, offset int) ([]*Project, int64, error) {
	if limit <= 0 {
		limit = 20
	}

	query := r.ds.DB(ctx).Model(&Project{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if managerID != "" {
		query = query.Where("manager_id = ?", managerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	var projects []*Project
	err := query.
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&projects).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// ListActive retrieves all projects in ACTIVE status, used by background sweeps
func (r *ProjectRepository) ListActive(ctx context.Context) ([]*Project, error) {
	var projects []*Project
	err := r.ds.DB(ctx).Where("status = ?", "ACTIVE").Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active projects: %w", err)
	}
	return projects, nil
}

// UpdateFields updates specific fields of a project by project_id
func (r *ProjectRepository) UpdateFields(ctx context.Context, projectID string, updates map[string]interface{}) error {
	return r.ds.DB(ctx).Model(&Project{}).
		Where("project_id = ?", projectID).
		Updates(updates).Error
}

// Delete soft-deletes a project
func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	return r.ds.DB(ctx).Where("project_id = ?", projectID).Delete(&Project{}).Error
}
