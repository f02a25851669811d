package handler

import (
	"net/http"

	"planpulse/internal/model"
	"planpulse/internal/service"
	"planpulse/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task operations
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates task handler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create creates a task under a project
// @Summary Create task
// @Description Add a task to a project's work breakdown
// @Tags tasks
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param request body model.CreateTaskRequest true "Task"
// @Success 201 {object} model.Task
// @Router /api/v1/projects/{project_id}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req model.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), c.Param("project_id"), &req)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to create task: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// List lists a project's tasks
// @Summary List tasks
// @Description List all tasks of a project in creation order
// @Tags tasks
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/projects/{project_id}/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// Get retrieves a task
// @Summary Get task
// @Description Get a task by ID
// @Tags tasks
// @Produce json
// @Param task_id path string true "Task ID"
// @Success 200 {object} model.Task
// @Router /api/v1/tasks/{task_id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("task_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update updates a task
// @Summary Update task
// @Description Update the provided fields of a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task_id path string true "Task ID"
// @Param request body model.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} model.Task
// @Router /api/v1/tasks/{task_id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var req model.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("task_id"), &req)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to update task %s: %v", c.Param("task_id"), err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateCompletion sets a task's completion percentage
// @Summary Update task completion
// @Description Set completion percentage, task status rolls forward automatically
// @Tags tasks
// @Accept json
// @Produce json
// @Param task_id path string true "Task ID"
// @Param request body model.UpdateCompletionRequest true "Completion"
// @Success 200 {object} model.Task
// @Router /api/v1/tasks/{task_id}/completion [patch]
func (h *TaskHandler) UpdateCompletion(c *gin.Context) {
	var req model.UpdateCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	task, err := h.taskService.UpdateCompletion(c.Request.Context(), c.Param("task_id"), req.Completion)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to update completion for task %s: %v", c.Param("task_id"), err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete removes a task
// @Summary Delete task
// @Description Soft-delete a task
// @Tags tasks
// @Param task_id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Router /api/v1/tasks/{task_id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("task_id")); err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to delete task %s: %v", c.Param("task_id"), err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
