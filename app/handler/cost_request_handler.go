package handler

import (
	"context"
	"net/http"
	"strconv"

	"planpulse/app/middleware"
	"planpulse/internal/model"
	"planpulse/internal/service"
	"planpulse/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CostRequestHandler handles spend request operations
type CostRequestHandler struct {
	costService *service.CostRequestService
}

// NewCostRequestHandler creates cost request handler
func NewCostRequestHandler(costService *service.CostRequestService) *CostRequestHandler {
	return &CostRequestHandler{
		costService: costService,
	}
}

// Create raises a cost request against a project
// @Summary Create cost request
// @Description Raise a PENDING spend request against a project
// @Tags cost-requests
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param request body model.CreateCostRequestRequest true "Cost request"
// @Success 201 {object} model.CostRequest
// @Router /api/v1/projects/{project_id}/cost-requests [post]
func (h *CostRequestHandler) Create(c *gin.Context) {
	var req model.CreateCostRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	cr, err := h.costService.CreateCostRequest(c.Request.Context(), c.Param("project_id"), middleware.CallerID(c), &req)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to create cost request: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cr)
}

// List lists cost requests
// @Summary List cost requests
// @Description List cost requests with optional project and status filters
// @Tags cost-requests
// @Produce json
// @Param project_id query string false "Project ID"
// @Param status query string false "Request status"
// @Param limit query int false "Return count limit (default 100)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/cost-requests [get]
func (h *CostRequestHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	requests, err := h.costService.ListCostRequests(c.Request.Context(),
		c.Query("project_id"), c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cost_requests": requests,
		"total":         len(requests),
		"limit":         limit,
		"offset":        offset,
	})
}

// Get retrieves a cost request
// @Summary Get cost request
// @Tags cost-requests
// @Produce json
// @Param request_id path string true "Request ID"
// @Success 200 {object} model.CostRequest
// @Router /api/v1/cost-requests/{request_id} [get]
func (h *CostRequestHandler) Get(c *gin.Context) {
	cr, err := h.costService.GetCostRequest(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cr)
}

// Approve approves a pending cost request
// @Summary Approve cost request
// @Tags cost-requests
// @Accept json
// @Produce json
// @Param request_id path string true "Request ID"
// @Param request body model.DecideCostRequestRequest false "Decision comment"
// @Success 200 {object} model.CostRequest
// @Router /api/v1/cost-requests/{request_id}/approve [post]
func (h *CostRequestHandler) Approve(c *gin.Context) {
	h.decide(c, h.costService.Approve)
}

// Reject rejects a pending cost request
// @Summary Reject cost request
// @Tags cost-requests
// @Accept json
// @Produce json
// @Param request_id path string true "Request ID"
// @Param request body model.DecideCostRequestRequest false "Decision comment"
// @Success 200 {object} model.CostRequest
// @Router /api/v1/cost-requests/{request_id}/reject [post]
func (h *CostRequestHandler) Reject(c *gin.Context) {
	h.decide(c, h.costService.Reject)
}

func (h *CostRequestHandler) decide(c *gin.Context, fn func(ctx context.Context, requestID, decidedBy, comment string) (*model.CostRequest, error)) {
	var req model.DecideCostRequestRequest
	// Body is optional, a missing comment is fine
	_ = c.ShouldBindJSON(&req)

	cr, err := fn(c.Request.Context(), c.Param("request_id"), middleware.CallerID(c), req.Comment)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to decide cost request %s: %v", c.Param("request_id"), err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cr)
}
