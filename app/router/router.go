package router

import (
	"planpulse/app/handler"
	"planpulse/app/middleware"
	"planpulse/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router Router
type Router struct {
	authHandler      *handler.AuthHandler
	projectHandler   *handler.ProjectHandler
	taskHandler      *handler.TaskHandler
	progressHandler  *handler.ProgressHandler
	dashboardHandler *handler.DashboardHandler
	timesheetHandler *handler.TimesheetHandler
	costHandler      *handler.CostRequestHandler
}

// NewRouter creates a new Router
func NewRouter(
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	taskHandler *handler.TaskHandler,
	progressHandler *handler.ProgressHandler,
	dashboardHandler *handler.DashboardHandler,
	timesheetHandler *handler.TimesheetHandler,
	costHandler *handler.CostRequestHandler,
) *Router {
	return &Router{
		authHandler:      authHandler,
		projectHandler:   projectHandler,
		taskHandler:      taskHandler,
		progressHandler:  progressHandler,
		dashboardHandler: dashboardHandler,
		timesheetHandler: timesheetHandler,
		costHandler:      costHandler,
	}
}

// Setup sets up routes
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger())
	engine.Use(middleware.Metrics())

	// Public endpoints
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")

	// Authentication
	auth := api.Group("/auth")
	{
		auth.POST("/login", r.authHandler.Login)
		auth.POST("/register", middleware.JWTAuth(), middleware.RequireRole(), r.authHandler.Register) // admin only
		auth.GET("/me", middleware.JWTAuth(), r.authHandler.Me)
	}

	// Everything below requires a valid token
	authed := api.Group("")
	authed.Use(middleware.JWTAuth())
	{
		managers := middleware.RequireRole(model.RoleManager)

		// Project lifecycle
		projects := authed.Group("/projects")
		{
			projects.POST("", managers, r.projectHandler.Create)
			projects.GET("", r.projectHandler.List)
			projects.GET("/:project_id", r.projectHandler.Get)
			projects.PUT("/:project_id", managers, r.projectHandler.Update)
			projects.DELETE("/:project_id", managers, r.projectHandler.Delete)

			// Work breakdown
			projects.POST("/:project_id/tasks", managers, r.taskHandler.Create)
			projects.GET("/:project_id/tasks", r.taskHandler.List)

			// Progress reports and the S-Curve
			projects.POST("/:project_id/progress", r.progressHandler.Create)
			projects.GET("/:project_id/progress", r.progressHandler.List)
			projects.GET("/:project_id/progress/scurve", r.progressHandler.SCurve)
			projects.GET("/:project_id/progress/export", r.progressHandler.Export)
			projects.POST("/:project_id/progress/import", r.progressHandler.Import)
			projects.GET("/:project_id/progress/live", r.dashboardHandler.Live)

			// Derived metrics
			projects.GET("/:project_id/metrics", r.dashboardHandler.ProjectMetrics)

			// Spend requests
			projects.POST("/:project_id/cost-requests", r.costHandler.Create)
		}

		// Task detail routes
		tasks := authed.Group("/tasks")
		{
			tasks.GET("/:task_id", r.taskHandler.Get)
			tasks.PUT("/:task_id", managers, r.taskHandler.Update)
			tasks.PATCH("/:task_id/completion", r.taskHandler.UpdateCompletion)
			tasks.DELETE("/:task_id", managers, r.taskHandler.Delete)
		}

		// Progress entry detail routes
		progress := authed.Group("/progress")
		{
			progress.GET("/template", r.progressHandler.Template)
			progress.GET("/live", r.dashboardHandler.Live)
			progress.PUT("/:entry_id", r.progressHandler.Update)
			progress.DELETE("/:entry_id", r.progressHandler.Delete)
		}

		// Import job status
		authed.GET("/imports/:job_id", r.progressHandler.ImportStatus)

		// Dashboard
		authed.GET("/dashboard/overview", r.dashboardHandler.Overview)

		// Timesheets
		timesheets := authed.Group("/timesheets")
		{
			timesheets.POST("", r.timesheetHandler.Create)
			timesheets.GET("", r.timesheetHandler.List)
			timesheets.GET("/:timesheet_id", r.timesheetHandler.Get)
			timesheets.PUT("/:timesheet_id", r.timesheetHandler.Update)
			timesheets.POST("/:timesheet_id/submit", r.timesheetHandler.Submit)
			timesheets.POST("/:timesheet_id/approve", managers, r.timesheetHandler.Approve)
			timesheets.POST("/:timesheet_id/reject", managers, r.timesheetHandler.Reject)
		}

		// Cost requests
		costRequests := authed.Group("/cost-requests")
		{
			costRequests.GET("", r.costHandler.List)
			costRequests.GET("/:request_id", r.costHandler.Get)
			costRequests.POST("/:request_id/approve", managers, r.costHandler.Approve)
			costRequests.POST("/:request_id/reject", managers, r.costHandler.Reject)
		}
	}
}
