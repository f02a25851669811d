package handler

import (
	"net/http"

	"planpulse/internal/service"
	"planpulse/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins, production should use stricter checks
	},
}

// DashboardHandler handles derived metrics and the live progress feed
type DashboardHandler struct {
	dashboardService *service.DashboardService
	hub              *service.LiveHub
}

// NewDashboardHandler creates dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, hub *service.LiveHub) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		hub:              hub,
	}
}

// ProjectMetrics returns one project's derived metrics
// @Summary Project metrics
// @Description Derived progress metrics for a project, cached briefly
// @Tags dashboard
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} model.ProjectMetrics
// @Router /api/v1/projects/{project_id}/metrics [get]
func (h *DashboardHandler) ProjectMetrics(c *gin.Context) {
	m, err := h.dashboardService.ProjectMetrics(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// Overview returns the portfolio-wide dashboard summary
// @Summary Portfolio overview
// @Description Metrics summary across all active projects
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.PortfolioOverview
// @Router /api/v1/dashboard/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to build overview: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// Live subscribes a websocket client to progress events
// @Summary Live progress feed
// @Description WebSocket stream of progress events, filter with project_id query
// @Tags dashboard
// @Param project_id query string false "Only events for this project"
// @Router /api/v1/progress/live [get]
func (h *DashboardHandler) Live(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to upgrade to websocket: %v", err)
		return
	}

	// Project-scoped route carries the ID as a path param, the global feed
	// accepts an optional query filter.
	projectID := c.Param("project_id")
	if projectID == "" {
		projectID = c.Query("project_id")
	}
	h.hub.Subscribe(ws, projectID)
}
