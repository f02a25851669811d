package main

import (
	"context"
	"fmt"
	"time"

	"planpulse/internal/jobs"
	"planpulse/internal/service"
	"planpulse/pkg/logger"
	"planpulse/pkg/notification"
	mysqlstore "planpulse/pkg/store/mysql"

	"github.com/go-redis/redis/v8"
)

func (app *Application) initJobs() error {
	if app.dashboardService == nil {
		logger.WarnCtx(app.ctx, "Service layer not fully initialized yet, skipping background task registration")
		return nil
	}

	manager := jobs.NewManager(app.ctx)

	// Distributed locks keep multiple replicas from running the same sweep.
	// If Redis is unavailable, locks automatically downgrade to single-instance mode.
	var redisClient *redis.Client
	if app.redisClient != nil {
		redisClient = app.redisClient.GetClient()
	}

	refreshLock := jobs.NewRedisLock(redisClient, "jobs:metrics-refresh-lock")
	overdueLock := jobs.NewRedisLock(redisClient, "jobs:overdue-sweep-lock")

	manager.Register(newMetricsRefreshJob(app.config.Jobs.MetricsRefreshInterval, app.dashboardService, app.mysqlRepo.Project, refreshLock))
	manager.Register(newOverdueSweepJob(app.config.Jobs.OverdueSweepInterval, app.mysqlRepo.Project, app.dashboardService, app.liveHub, notification.NewFeishuNotifier(), overdueLock))

	app.jobsManager = manager
	return nil
}

// metricsRefreshJob periodically recomputes the dashboard snapshot of every
// active project so the cache stays warm.
type metricsRefreshJob struct {
	interval         time.Duration
	dashboardService *service.DashboardService
	projectRepo      *mysqlstore.ProjectRepository
	lock             *jobs.RedisLock
}

func newMetricsRefreshJob(interval time.Duration, svc *service.DashboardService, projectRepo *mysqlstore.ProjectRepository, lock *jobs.RedisLock) jobs.Job {
	return &metricsRefreshJob{
		interval:         interval,
		dashboardService: svc,
		projectRepo:      projectRepo,
		lock:             lock,
	}
}

func (j *metricsRefreshJob) Name() string {
	return "metrics-refresh"
}

func (j *metricsRefreshJob) Interval() time.Duration {
	return j.interval
}

func (j *metricsRefreshJob) Run(ctx context.Context) error {
	if j.dashboardService == nil {
		return fmt.Errorf("dashboard service not configured")
	}

	if j.lock != nil {
		acquired, err := j.lock.TryLock(ctx)
		if err != nil || !acquired {
			logger.DebugCtx(ctx, "another instance is refreshing metrics, skipping this cycle")
			return nil
		}
		defer j.lock.Unlock(ctx)
	}

	projects, err := j.projectRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active projects: %w", err)
	}

	refreshed := 0
	for _, p := range projects {
		if _, err := j.dashboardService.RefreshProjectMetrics(ctx, p.ProjectID); err != nil {
			logger.WarnCtx(ctx, "failed to refresh metrics for project %s: %v", p.ProjectID, err)
			continue
		}
		refreshed++
	}

	logger.InfoCtx(ctx, "metrics refresh completed, projects: %d, refreshed: %d", len(projects), refreshed)
	return nil
}

// overdueSweepJob flags active projects whose end date has passed and pushes
// an event to live dashboard subscribers.
type overdueSweepJob struct {
	interval         time.Duration
	projectRepo      *mysqlstore.ProjectRepository
	dashboardService *service.DashboardService
	hub              *service.LiveHub
	notifier         *notification.FeishuNotifier
	lock             *jobs.RedisLock
}

func newOverdueSweepJob(interval time.Duration, projectRepo *mysqlstore.ProjectRepository, dashboardService *service.DashboardService, hub *service.LiveHub, notifier *notification.FeishuNotifier, lock *jobs.RedisLock) jobs.Job {
	return &overdueSweepJob{
		interval:         interval,
		projectRepo:      projectRepo,
		dashboardService: dashboardService,
		hub:              hub,
		notifier:         notifier,
		lock:             lock,
	}
}

func (j *overdueSweepJob) Name() string {
	return "overdue-sweep"
}

func (j *overdueSweepJob) Interval() time.Duration {
	return j.interval
}

func (j *overdueSweepJob) Run(ctx context.Context) error {
	if j.projectRepo == nil {
		return fmt.Errorf("project repository not configured")
	}

	if j.lock != nil {
		acquired, err := j.lock.TryLock(ctx)
		if err != nil || !acquired {
			logger.DebugCtx(ctx, "another instance is running the overdue sweep, skipping this cycle")
			return nil
		}
		defer j.lock.Unlock(ctx)
	}

	projects, err := j.projectRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active projects: %w", err)
	}

	now := time.Now().UTC()
	overdue := 0
	for _, p := range projects {
		if p.EndDate == nil || !p.EndDate.Before(now) {
			continue
		}
		overdue++
		logger.WarnCtx(ctx, "project %s (%s) is past its end date %s", p.ProjectID, p.Name, p.EndDate.Format("2006-01-02"))

		var overall float64
		if j.dashboardService != nil {
			if m, err := j.dashboardService.ProjectMetrics(ctx, p.ProjectID); err == nil {
				overall = m.OverallProgress
			}
		}

		if j.hub != nil {
			j.hub.Broadcast(&service.LiveEvent{
				Event:     "project_overdue",
				ProjectID: p.ProjectID,
				Payload: map[string]interface{}{
					"name":     p.Name,
					"end_date": p.EndDate.Format("2006-01-02"),
					"progress": overall,
				},
			})
		}
		if j.notifier != nil {
			if err := j.notifier.SendOverdueProjectNotification(ctx, &notification.OverdueProjectNotification{
				ProjectID:       p.ProjectID,
				ProjectName:     p.Name,
				EndDate:         *p.EndDate,
				OverallProgress: overall,
				ManagerID:       p.ManagerID,
				DetectedAt:      now,
			}); err != nil {
				logger.WarnCtx(ctx, "failed to notify overdue project %s: %v", p.ProjectID, err)
			}
		}
	}

	if overdue > 0 {
		logger.InfoCtx(ctx, "overdue sweep completed, overdue projects: %d", overdue)
	}
	return nil
}
