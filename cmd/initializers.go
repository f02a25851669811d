package main

import (
	"fmt"
	"net/http"

	"planpulse/app/handler"
	"planpulse/app/router"
	"planpulse/internal/service"
	"planpulse/pkg/config"
	"planpulse/pkg/logger"
	asynqqueue "planpulse/pkg/queue/asynq"
	mysqlstore "planpulse/pkg/store/mysql"
	redisstore "planpulse/pkg/store/redis"

	"github.com/gin-gonic/gin"
)

// initConfig initializes configuration
func (app *Application) initConfig() error {
	if err := config.Init(); err != nil {
		return err
	}
	app.config = config.GlobalConfig
	return nil
}

// initLogger initializes logging
func (app *Application) initLogger() error {
	if err := logger.Init(); err != nil {
		return err
	}
	app.registerCleanup(func() {
		logger.Sync()
		logger.InfoCtx(app.ctx, "Logging system has been closed")
	})
	return nil
}

// initMySQL initializes MySQL
func (app *Application) initMySQL() error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		app.config.MySQL.User,
		app.config.MySQL.Password,
		app.config.MySQL.Host,
		app.config.MySQL.Port,
		app.config.MySQL.Database,
	)

	repo, err := mysqlstore.NewRepository(dsn)
	if err != nil {
		return err
	}

	app.mysqlRepo = repo
	app.registerCleanup(func() {
		repo.Close()
		logger.InfoCtx(app.ctx, "MySQL connection has been closed")
	})

	return nil
}

// initRedis initializes Redis
func (app *Application) initRedis() error {
	client, err := redisstore.NewRedisClient(app.config)
	if err != nil {
		return err
	}

	app.redisClient = client
	app.metricsCache = redisstore.NewMetricsCache(client, app.config.Cache.MetricsTTL)
	app.registerCleanup(func() {
		client.Close()
		logger.InfoCtx(app.ctx, "Redis connection has been closed")
	})

	return nil
}

// initQueue initializes the asynq import queue
func (app *Application) initQueue() error {
	manager, err := asynqqueue.NewManager(app.config)
	if err != nil {
		return err
	}

	app.queueManager = manager
	app.registerCleanup(func() {
		manager.Close()
		logger.InfoCtx(app.ctx, "Import queue has been closed")
	})

	return nil
}

// initServices initializes service layer
func (app *Application) initServices() error {
	// Live feed hub for dashboard subscribers
	app.liveHub = service.NewLiveHub()

	// Initialize auth service
	app.authService = service.NewAuthService(app.mysqlRepo.User, &app.config.Auth)

	// Initialize project service
	app.projectService = service.NewProjectService(app.mysqlRepo.Project, app.metricsCache)

	// Initialize task service
	app.taskService = service.NewTaskService(
		app.mysqlRepo.Task,
		app.mysqlRepo.Project,
		app.metricsCache,
		app.liveHub,
	)

	// Initialize progress service
	app.progressService = service.NewProgressService(
		app.mysqlRepo.Progress,
		app.mysqlRepo.Project,
		app.mysqlRepo.ImportJob,
		app.metricsCache,
		app.queueManager,
		app.liveHub,
	)

	// Initialize dashboard service
	app.dashboardService = service.NewDashboardService(
		app.mysqlRepo.Project,
		app.mysqlRepo.Task,
		app.mysqlRepo.Progress,
		app.metricsCache,
	)

	// Initialize timesheet service
	app.timesheetService = service.NewTimesheetService(app.mysqlRepo.Timesheet, app.mysqlRepo.Task)

	// Initialize cost request service
	app.costService = service.NewCostRequestService(app.mysqlRepo.CostRequest, app.mysqlRepo.Project)

	// Initialize import service and register it on the queue
	app.importService = service.NewImportService(
		app.mysqlRepo.Progress,
		app.mysqlRepo.ImportJob,
		app.mysqlRepo.GetDatastore(),
		app.metricsCache,
		app.liveHub,
	)
	app.queueManager.RegisterHandler(asynqqueue.TypeProgressImport, app.importService)

	return nil
}

// initHandlers initializes handler layer
func (app *Application) initHandlers() error {
	app.authHandler = handler.NewAuthHandler(app.authService)
	app.projectHandler = handler.NewProjectHandler(app.projectService)
	app.taskHandler = handler.NewTaskHandler(app.taskService)
	app.progressHandler = handler.NewProgressHandler(app.progressService)
	app.dashboardHandler = handler.NewDashboardHandler(app.dashboardService, app.liveHub)
	app.timesheetHandler = handler.NewTimesheetHandler(app.timesheetService)
	app.costHandler = handler.NewCostRequestHandler(app.costService)
	return nil
}

// initHTTPServer initializes HTTP server
func (app *Application) initHTTPServer() error {
	// Initialize router
	r := router.NewRouter(
		app.authHandler,
		app.projectHandler,
		app.taskHandler,
		app.progressHandler,
		app.dashboardHandler,
		app.timesheetHandler,
		app.costHandler,
	)

	// Set Gin mode
	gin.SetMode(app.config.Server.Mode)

	// Create Gin engine
	app.ginEngine = gin.New()
	app.ginEngine.Use(gin.Recovery())

	// Setup routes
	r.Setup(app.ginEngine)

	// Create HTTP server
	app.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.ginEngine,
	}

	return nil
}
