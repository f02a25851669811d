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

// TaskService handles task business logic
type TaskService struct {
	taskRepo     *mysql.TaskRepository
	projectRepo  *mysql.ProjectRepository
	metricsCache *redis.MetricsCache
	hub          *LiveHub
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo *mysql.TaskRepository, projectRepo *mysql.ProjectRepository, metricsCache *redis.MetricsCache, hub *LiveHub) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		projectRepo:  projectRepo,
		metricsCache: metricsCache,
		hub:          hub,
	}
}

// CreateTask creates a task under a project
func (s *TaskService) CreateTask(ctx context.Context, projectID string, req *model.CreateTaskRequest) (*model.Task, error) {
	project, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}

	plannedStart, err := time.Parse(dateLayout, req.PlannedStart)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid planned_start: %v", ErrInvalidInput, err)
	}
	plannedEnd, err := time.Parse(dateLayout, req.PlannedEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid planned_end: %v", ErrInvalidInput, err)
	}
	if plannedEnd.Before(plannedStart) {
		return nil, fmt.Errorf("%w: planned_end precedes planned_start", ErrInvalidInput)
	}

	priority := model.TaskPriorityMedium
	if req.Priority != "" {
		if !model.ValidTaskPriority(req.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %s", ErrInvalidInput, req.Priority)
		}
		priority = model.TaskPriority(req.Priority)
	}

	task := &mysql.Task{
		TaskID:       uuid.NewString(),
		ProjectID:    projectID,
		Name:         req.Name,
		Description:  req.Description,
		PlannedStart: plannedStart,
		PlannedEnd:   plannedEnd,
		Weight:       clampPercent(req.Weight),
		Completion:   0,
		Priority:     string(priority),
		Status:       string(model.TaskStatusNotStarted),
		AssigneeID:   req.AssigneeID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	s.invalidateMetrics(ctx, projectID)

	return mysql.ToTaskDomain(task), nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	task, err := s.taskRepo.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}
	return mysql.ToTaskDomain(task), nil
}

// ListTasks lists all tasks of a project in creation order
func (s *TaskService) ListTasks(ctx context.Context, projectID string) ([]*model.Task, error) {
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

	result := make([]*model.Task, len(tasks))
	for i, t := range tasks {
		result[i] = mysql.ToTaskDomain(t)
	}
	return result, nil
}

// UpdateTask updates the provided fields of a task
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, req *model.UpdateTaskRequest) (*model.Task, error) {
	existing, err := s.taskRepo.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PlannedStart != nil || req.PlannedEnd != nil {
		start, end, err := resolvePlannedRange(existing.PlannedStart, existing.PlannedEnd, req)
		if err != nil {
			return nil, err
		}
		if req.PlannedStart != nil {
			updates["planned_start"] = start
		}
		if req.PlannedEnd != nil {
			updates["planned_end"] = end
		}
	}
	if req.Weight != nil {
		updates["weight"] = clampPercent(*req.Weight)
	}
	if req.Priority != nil {
		if !model.ValidTaskPriority(*req.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %s", ErrInvalidInput, *req.Priority)
		}
		updates["priority"] = *req.Priority
	}
	if req.Status != nil {
		if !model.ValidTaskStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %s", ErrInvalidInput, *req.Status)
		}
		updates["status"] = *req.Status
		if *req.Status == string(model.TaskStatusCompleted) {
			updates["completion"] = 100.0
		}
	}
	if req.AssigneeID != nil {
		updates["assignee_id"] = *req.AssigneeID
	}

	if len(updates) > 0 {
		if err := s.taskRepo.UpdateFields(ctx, taskID, updates); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
		s.invalidateMetrics(ctx, existing.ProjectID)
	}

	return s.GetTask(ctx, taskID)
}

// UpdateCompletion sets the completion percentage of a task and rolls its
// status forward: 100 marks the task COMPLETED, a value above 0 moves a
// NOT_STARTED task to IN_PROGRESS.
func (s *TaskService) UpdateCompletion(ctx context.Context, taskID string, completion float64) (*model.Task, error) {
	existing, err := s.taskRepo.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}

	completion = clampPercent(completion)
	updates := map[string]interface{}{"completion": completion}
	switch {
	case completion >= 100:
		updates["status"] = string(model.TaskStatusCompleted)
	case completion > 0 && existing.Status == string(model.TaskStatusNotStarted):
		updates["status"] = string(model.TaskStatusInProgress)
	case completion < 100 && existing.Status == string(model.TaskStatusCompleted):
		updates["status"] = string(model.TaskStatusInProgress)
	}

	if err := s.taskRepo.UpdateFields(ctx, taskID, updates); err != nil {
		return nil, fmt.Errorf("failed to update completion: %w", err)
	}
	s.invalidateMetrics(ctx, existing.ProjectID)

	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	s.broadcast(existing.ProjectID, "task_completion_updated", task)
	return task, nil
}

// DeleteTask soft-deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	existing, err := s.taskRepo.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.invalidateMetrics(ctx, existing.ProjectID)
	return nil
}

// resolvePlannedRange applies the requested planned dates over the stored
// ones and validates the resulting pair, so a partial update cannot leave a
// task whose planned end precedes its planned start.
func resolvePlannedRange(currentStart, currentEnd time.Time, req *model.UpdateTaskRequest) (time.Time, time.Time, error) {
	start, end := currentStart, currentEnd
	if req.PlannedStart != nil {
		d, err := time.Parse(dateLayout, *req.PlannedStart)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid planned_start: %v", ErrInvalidInput, err)
		}
		start = d
	}
	if req.PlannedEnd != nil {
		d, err := time.Parse(dateLayout, *req.PlannedEnd)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid planned_end: %v", ErrInvalidInput, err)
		}
		end = d
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: planned_end precedes planned_start", ErrInvalidInput)
	}
	return start, end, nil
}

func (s *TaskService) broadcast(projectID, event string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(&LiveEvent{Event: event, ProjectID: projectID, Payload: payload})
}

func (s *TaskService) invalidateMetrics(ctx context.Context, projectID string) {
	if s.metricsCache == nil {
		return
	}
	_ = s.metricsCache.Invalidate(ctx, projectID)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
