package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// TaskRepository handles task persistence in MySQL
type TaskRepository struct {
	ds *Datastore
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(ds *Datastore) *TaskRepository {
	return &TaskRepository{ds: ds}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *Task) error {
	return r.ds.DB(ctx).Create(task).Error
}

// Get retrieves a task by task_id, nil when not found
func (r *TaskRepository) Get(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	err := r.ds.DB(ctx).Where("task_id = ?", taskID).First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// ListByProject retrieves the full task list of a project in creation order
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]*Task, error) {
	var tasks []*Task
	err := r.ds.DB(ctx).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateFields updates specific fields of a task by task_id
func (r *TaskRepository) UpdateFields(ctx context.Context, taskID string, updates map[string]interface{}) error {
	result := r.ds.DB(ctx).Model(&Task{}).
		Where("task_id = ?", taskID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("task not found: task_id=%s", taskID)
	}
	return nil
}

// Delete soft-deletes a task. Time-tracked tasks stay queryable through
// Unscoped lookups, which keeps historical timesheets resolvable.
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	return r.ds.DB(ctx).Where("task_id = ?", taskID).Delete(&Task{}).Error
}
