package handler

import (
	"net/http"

	"planpulse/internal/model"
	"planpulse/internal/service"
	"planpulse/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles project operations
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates project handler
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Create creates a project
// @Summary Create project
// @Description Create a new project in PLANNING state
// @Tags projects
// @Accept json
// @Produce json
// @Param request body model.CreateProjectRequest true "Project"
// @Success 201 {object} model.Project
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req model.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), &req)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to create project: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// Get retrieves a project
// @Summary Get project
// @Description Get a project by ID
// @Tags projects
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} model.Project
// @Router /api/v1/projects/{project_id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projectService.GetProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// List lists projects
// @Summary List projects
// @Description List projects with optional status and manager filters, paginated
// @Tags projects
// @Produce json
// @Param status query string false "Project status"
// @Param manager query string false "Manager user ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20)"
// @Success 200 {object} model.ProjectList
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	var query model.ProjectListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}

	list, err := h.projectService.ListProjects(c.Request.Context(), &query)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to list projects: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Update updates a project
// @Summary Update project
// @Description Update the provided fields of a project
// @Tags projects
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param request body model.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} model.Project
// @Router /api/v1/projects/{project_id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req model.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), c.Param("project_id"), &req)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to update project %s: %v", c.Param("project_id"), err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete removes a project
// @Summary Delete project
// @Description Soft-delete a project
// @Tags projects
// @Param project_id path string true "Project ID"
// @Success 200 {object} map[string]string
// @Router /api/v1/projects/{project_id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectService.DeleteProject(c.Request.Context(), c.Param("project_id")); err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to delete project %s: %v", c.Param("project_id"), err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}
