package service

import (
	"context"
	"fmt"
	"time"

	"planpulse/internal/model"
	"planpulse/pkg/store/mysql"
	"planpulse/pkg/store/redis"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo  *mysql.ProjectRepository
	metricsCache *redis.MetricsCache
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo *mysql.ProjectRepository, metricsCache *redis.MetricsCache) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		metricsCache: metricsCache,
	}
}

// CreateProject creates a new project in PLANNING state
func (s *ProjectService) CreateProject(ctx context.Context, req *model.CreateProjectRequest) (*model.Project, error) {
	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_date: %v", ErrInvalidInput, err)
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_date: %v", ErrInvalidInput, err)
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, fmt.Errorf("%w: end_date precedes start_date", ErrInvalidInput)
	}

	project := &mysql.Project{
		ProjectID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Status:      string(model.ProjectStatusPlanning),
		StartDate:   startDate,
		EndDate:     endDate,
		Budget:      req.Budget,
		ManagerID:   req.ManagerID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return mysql.ToProjectDomain(project), nil
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	project, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}
	return mysql.ToProjectDomain(project), nil
}

// ListProjects lists projects with optional status and manager filters
func (s *ProjectService) ListProjects(ctx context.Context, query *model.ProjectListQuery) (*model.ProjectList, error) {
	if query.Status != "" && !model.ValidProjectStatus(query.Status) {
		return nil, fmt.Errorf("%w: unknown status %s", ErrInvalidInput, query.Status)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}

	projects, total, err := s.projectRepo.List(ctx, query.Status, query.Manager, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	result := make([]*model.Project, len(projects))
	for i, p := range projects {
		result[i] = mysql.ToProjectDomain(p)
	}
	return &model.ProjectList{
		Projects: result,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// UpdateProject updates the provided fields of a project
func (s *ProjectService) UpdateProject(ctx context.Context, projectID string, req *model.UpdateProjectRequest) (*model.Project, error) {
	existing, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !model.ValidProjectStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %s", ErrInvalidInput, *req.Status)
		}
		updates["status"] = *req.Status
	}
	if req.StartDate != nil {
		d, err := parseOptionalDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start_date: %v", ErrInvalidInput, err)
		}
		updates["start_date"] = d
	}
	if req.EndDate != nil {
		d, err := parseOptionalDate(*req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end_date: %v", ErrInvalidInput, err)
		}
		updates["end_date"] = d
	}
	if req.Budget != nil {
		updates["budget"] = *req.Budget
	}
	if req.ManagerID != nil {
		updates["manager_id"] = *req.ManagerID
	}

	if len(updates) > 0 {
		if err := s.projectRepo.UpdateFields(ctx, projectID, updates); err != nil {
			return nil, fmt.Errorf("failed to update project: %w", err)
		}
		s.invalidateMetrics(ctx, projectID)
	}

	return s.GetProject(ctx, projectID)
}

// DeleteProject soft-deletes a project
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	existing, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.invalidateMetrics(ctx, projectID)
	return nil
}

func (s *ProjectService) invalidateMetrics(ctx context.Context, projectID string) {
	if s.metricsCache == nil {
		return
	}
	// Stale snapshots expire on their own, eviction failure is not fatal.
	_ = s.metricsCache.Invalidate(ctx, projectID)
}

// parseOptionalDate parses a YYYY-MM-DD string, empty means absent.
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
