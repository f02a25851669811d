package service

import (
	"context"
	"fmt"
	"time"

	"planpulse/internal/model"
	"planpulse/internal/progress"
	"planpulse/pkg/logger"
	"planpulse/pkg/metrics"
	"planpulse/pkg/store/mysql"
	"planpulse/pkg/store/redis"
)

// PortfolioOverview dashboard summary across all active projects
type PortfolioOverview struct {
	TotalProjects   int                     `json:"total_projects"`
	OnTrackProjects int                     `json:"on_track_projects"`
	BehindProjects  int                     `json:"behind_projects"`
	AverageProgress float64                 `json:"average_progress"`
	Projects        []*ProjectOverviewEntry `json:"projects"`
}

// ProjectOverviewEntry one project's line in the portfolio overview
type ProjectOverviewEntry struct {
	Project *model.Project        `json:"project"`
	Metrics *model.ProjectMetrics `json:"metrics"`
}

// DashboardService computes derived project metrics, with a Redis snapshot
// cache in front of the aggregation.
type DashboardService struct {
	projectRepo  *mysql.ProjectRepository
	taskRepo     *mysql.TaskRepository
	progressRepo *mysql.ProgressRepository
	metricsCache *redis.MetricsCache
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	projectRepo *mysql.ProjectRepository,
	taskRepo *mysql.TaskRepository,
	progressRepo *mysql.ProgressRepository,
	metricsCache *redis.MetricsCache,
) *DashboardService {
	return &DashboardService{
		projectRepo:  projectRepo,
		taskRepo:     taskRepo,
		progressRepo: progressRepo,
		metricsCache: metricsCache,
	}
}

// ProjectMetrics returns the derived metrics for one project, served from
// the cache when a fresh snapshot exists.
func (s *DashboardService) ProjectMetrics(ctx context.Context, projectID string) (*model.ProjectMetrics, error) {
	if s.metricsCache != nil {
		cached, err := s.metricsCache.Get(ctx, projectID)
		if err != nil {
			logger.WarnCtx(ctx, "metrics cache lookup failed for project %s: %v", projectID, err)
		}
		if cached != nil {
			metrics.MetricsCacheHits.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.MetricsCacheHits.WithLabelValues("miss").Inc()
	}

	m, err := s.computeMetrics(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if s.metricsCache != nil {
		if err := s.metricsCache.Set(ctx, m); err != nil {
			logger.WarnCtx(ctx, "failed to cache metrics for project %s: %v", projectID, err)
		}
	}
	return m, nil
}

// RefreshProjectMetrics recomputes and re-caches one project's metrics,
// bypassing any existing snapshot. Used by the periodic refresh job.
func (s *DashboardService) RefreshProjectMetrics(ctx context.Context, projectID string) (*model.ProjectMetrics, error) {
	m, err := s.computeMetrics(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if s.metricsCache != nil {
		if err := s.metricsCache.Set(ctx, m); err != nil {
			return nil, fmt.Errorf("failed to cache metrics: %w", err)
		}
	}
	return m, nil
}

// Overview aggregates metrics across every non-deleted active project
func (s *DashboardService) Overview(ctx context.Context) (*PortfolioOverview, error) {
	projects, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active projects: %w", err)
	}

	overview := &PortfolioOverview{
		Projects: make([]*ProjectOverviewEntry, 0, len(projects)),
	}

	var progressSum float64
	for _, p := range projects {
		m, err := s.ProjectMetrics(ctx, p.ProjectID)
		if err != nil {
			logger.WarnCtx(ctx, "skipping project %s in overview: %v", p.ProjectID, err)
			continue
		}
		overview.Projects = append(overview.Projects, &ProjectOverviewEntry{
			Project: mysql.ToProjectDomain(p),
			Metrics: m,
		})
		overview.TotalProjects++
		progressSum += m.OverallProgress
		if m.IsOnTrack {
			overview.OnTrackProjects++
		} else {
			overview.BehindProjects++
		}
	}
	if overview.TotalProjects > 0 {
		overview.AverageProgress = progressSum / float64(overview.TotalProjects)
	}
	return overview, nil
}

func (s *DashboardService) computeMetrics(ctx context.Context, projectID string) (*model.ProjectMetrics, error) {
	project, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}

	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	entries, err := s.progressRepo.ListByProject(ctx, projectID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress entries: %w", err)
	}

	domainTasks := make([]*model.Task, len(tasks))
	for i, t := range tasks {
		domainTasks[i] = mysql.ToTaskDomain(t)
	}
	domainEntries := make([]*model.ProgressEntry, len(entries))
	for i, e := range entries {
		domainEntries[i] = mysql.ToProgressEntryDomain(e)
	}

	return progress.Metrics(mysql.ToProjectDomain(project), domainTasks, domainEntries, time.Now().UTC()), nil
}
