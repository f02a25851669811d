package handler

import (
	"net/http"
	"strconv"

	"planpulse/app/middleware"
	"planpulse/internal/model"
	"planpulse/internal/service"
	"planpulse/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TimesheetHandler handles timesheet operations
type TimesheetHandler struct {
	timesheetService *service.TimesheetService
}

// NewTimesheetHandler creates timesheet handler
func NewTimesheetHandler(timesheetService *service.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{
		timesheetService: timesheetService,
	}
}

// Create records a draft timesheet for the calling user
// @Summary Create timesheet
// @Description Record hours against a task, starts in DRAFT
// @Tags timesheets
// @Accept json
// @Produce json
// @Param request body model.CreateTimesheetRequest true "Timesheet"
// @Success 201 {object} model.Timesheet
// @Router /api/v1/timesheets [post]
func (h *TimesheetHandler) Create(c *gin.Context) {
	var req model.CreateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ts, err := h.timesheetService.CreateTimesheet(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to create timesheet: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ts)
}

// List lists timesheets
// @Summary List timesheets
// @Description List timesheets with optional user, project, status and date filters
// @Tags timesheets
// @Produce json
// @Param user_id query string false "User ID"
// @Param project_id query string false "Project ID"
// @Param status query string false "Timesheet status"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Param limit query int false "Return count limit (default 100)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/timesheets [get]
func (h *TimesheetHandler) List(c *gin.Context) {
	var query model.TimesheetListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}

	// Employees only see their own sheets
	if middleware.CallerRole(c) == model.RoleEmployee {
		query.UserID = middleware.CallerID(c)
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	sheets, err := h.timesheetService.ListTimesheets(c.Request.Context(), &query, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timesheets": sheets,
		"total":      len(sheets),
		"limit":      limit,
		"offset":     offset,
	})
}

// Get retrieves a timesheet
// @Summary Get timesheet
// @Tags timesheets
// @Produce json
// @Param timesheet_id path string true "Timesheet ID"
// @Success 200 {object} model.Timesheet
// @Router /api/v1/timesheets/{timesheet_id} [get]
func (h *TimesheetHandler) Get(c *gin.Context) {
	ts, err := h.timesheetService.GetTimesheet(c.Request.Context(), c.Param("timesheet_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ts)
}

// Update edits a draft timesheet
// @Summary Update timesheet
// @Description Edit a draft timesheet owned by the caller
// @Tags timesheets
// @Accept json
// @Produce json
// @Param timesheet_id path string true "Timesheet ID"
// @Param request body model.UpdateTimesheetRequest true "Fields to update"
// @Success 200 {object} model.Timesheet
// @Router /api/v1/timesheets/{timesheet_id} [put]
func (h *TimesheetHandler) Update(c *gin.Context) {
	var req model.UpdateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ts, err := h.timesheetService.UpdateTimesheet(c.Request.Context(), c.Param("timesheet_id"), middleware.CallerID(c), &req)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to update timesheet %s: %v", c.Param("timesheet_id"), err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ts)
}

// Submit sends a draft timesheet for approval
// @Summary Submit timesheet
// @Tags timesheets
// @Produce json
// @Param timesheet_id path string true "Timesheet ID"
// @Success 200 {object} model.Timesheet
// @Router /api/v1/timesheets/{timesheet_id}/submit [post]
func (h *TimesheetHandler) Submit(c *gin.Context) {
	ts, err := h.timesheetService.Submit(c.Request.Context(), c.Param("timesheet_id"), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ts)
}

// Approve approves a submitted timesheet
// @Summary Approve timesheet
// @Tags timesheets
// @Produce json
// @Param timesheet_id path string true "Timesheet ID"
// @Success 200 {object} model.Timesheet
// @Router /api/v1/timesheets/{timesheet_id}/approve [post]
func (h *TimesheetHandler) Approve(c *gin.Context) {
	ts, err := h.timesheetService.Approve(c.Request.Context(), c.Param("timesheet_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ts)
}

// Reject rejects a submitted timesheet
// @Summary Reject timesheet
// @Tags timesheets
// @Produce json
// @Param timesheet_id path string true "Timesheet ID"
// @Success 200 {object} model.Timesheet
// @Router /api/v1/timesheets/{timesheet_id}/reject [post]
func (h *TimesheetHandler) Reject(c *gin.Context) {
	ts, err := h.timesheetService.Reject(c.Request.Context(), c.Param("timesheet_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ts)
}
