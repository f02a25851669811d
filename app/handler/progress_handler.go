package handler

import (
	"fmt"
	"io"
	"net/http"

	"planpulse/app/middleware"
	"planpulse/internal/model"
	"planpulse/internal/service"
	"planpulse/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Uploads beyond this are rejected before parsing
const maxImportSize = 10 << 20 // 10 MiB

// ProgressHandler handles progress reports, the S-Curve and CSV import/export
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

// Create records a manual progress report
// @Summary Report progress
// @Description Record a manual progress entry for a project
// @Tags progress
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param request body model.CreateProgressRequest true "Progress report"
// @Success 201 {object} model.ProgressEntry
// @Router /api/v1/projects/{project_id}/progress [post]
func (h *ProgressHandler) Create(c *gin.Context) {
	var req model.CreateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	entry, err := h.progressService.CreateEntry(c.Request.Context(), c.Param("project_id"), middleware.CallerID(c), &req)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to create progress entry: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// List lists a project's progress entries
// @Summary List progress entries
// @Description List progress entries ordered by date, optional inclusive date range
// @Tags progress
// @Produce json
// @Param project_id path string true "Project ID"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/projects/{project_id}/progress [get]
func (h *ProgressHandler) List(c *gin.Context) {
	var query model.ProgressListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}

	entries, err := h.progressService.ListEntries(c.Request.Context(), c.Param("project_id"), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// Update updates a progress entry
// @Summary Update progress entry
// @Description Update the provided fields of a progress entry
// @Tags progress
// @Accept json
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Param request body model.UpdateProgressRequest true "Fields to update"
// @Success 200 {object} model.ProgressEntry
// @Router /api/v1/progress/{entry_id} [put]
func (h *ProgressHandler) Update(c *gin.Context) {
	var req model.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	entry, err := h.progressService.UpdateEntry(c.Request.Context(), c.Param("entry_id"), &req)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to update progress entry %s: %v", c.Param("entry_id"), err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Delete removes a progress entry
// @Summary Delete progress entry
// @Tags progress
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} map[string]string
// @Router /api/v1/progress/{entry_id} [delete]
func (h *ProgressHandler) Delete(c *gin.Context) {
	if err := h.progressService.DeleteEntry(c.Request.Context(), c.Param("entry_id")); err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to delete progress entry %s: %v", c.Param("entry_id"), err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "progress entry deleted"})
}

// SCurve returns the cumulative planned-vs-actual series
// @Summary Project S-Curve
// @Description Cumulative planned-vs-actual progress series for charting
// @Tags progress
// @Produce json
// @Param project_id path string true "Project ID"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/projects/{project_id}/progress/scurve [get]
func (h *ProgressHandler) SCurve(c *gin.Context) {
	var query model.ProgressListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}

	points, err := h.progressService.SCurve(c.Request.Context(), c.Param("project_id"), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id": c.Param("project_id"),
		"points":     points,
		"total":      len(points),
	})
}

// Export downloads a project's progress entries as CSV
// @Summary Export progress CSV
// @Description Download all progress entries of a project as a CSV file
// @Tags progress
// @Produce text/csv
// @Param project_id path string true "Project ID"
// @Success 200 {string} string "CSV content"
// @Router /api/v1/projects/{project_id}/progress/export [get]
func (h *ProgressHandler) Export(c *gin.Context) {
	projectID := c.Param("project_id")
	content, err := h.progressService.ExportCSV(c.Request.Context(), projectID)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to export progress for project %s: %v", projectID, err)
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="progress-%s.csv"`, projectID))
	c.Data(http.StatusOK, "text/csv", []byte(content))
}

// Template downloads the header-only CSV import template
// @Summary Import template
// @Description Download the CSV template accepted by the import endpoint
// @Tags progress
// @Produce text/csv
// @Success 200 {string} string "CSV template"
// @Router /api/v1/progress/template [get]
func (h *ProgressHandler) Template(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="progress-template.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(h.progressService.TemplateCSV()))
}

// Import uploads a CSV file and queues it for asynchronous processing
// @Summary Import progress CSV
// @Description Upload a CSV file of progress entries, processed asynchronously
// @Tags progress
// @Accept multipart/form-data
// @Produce json
// @Param project_id path string true "Project ID"
// @Param file formData file true "CSV file"
// @Success 202 {object} model.ImportJob
// @Router /api/v1/projects/{project_id}/progress/import [post]
func (h *ProgressHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open file"})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxImportSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	job, err := h.progressService.StartImport(c.Request.Context(), c.Param("project_id"), middleware.CallerID(c), string(content))
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to start import: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, job)
}

// ImportStatus reports the state of a queued import
// @Summary Import job status
// @Description Get the status and per-row errors of an import job
// @Tags progress
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} model.ImportJob
// @Router /api/v1/imports/{job_id} [get]
func (h *ProgressHandler) ImportStatus(c *gin.Context) {
	job, err := h.progressService.GetImportJob(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
