package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/fims-api/api/swagger"
	"github.com/noah-isme/fims-api/internal/handler"
	"github.com/noah-isme/fims-api/internal/middleware"
	"github.com/noah-isme/fims-api/internal/models"
	"github.com/noah-isme/fims-api/internal/repository"
	"github.com/noah-isme/fims-api/internal/service"
	"github.com/noah-isme/fims-api/pkg/cache"
	"github.com/noah-isme/fims-api/pkg/config"
	"github.com/noah-isme/fims-api/pkg/database"
	"github.com/noah-isme/fims-api/pkg/export"
	"github.com/noah-isme/fims-api/pkg/jobs"
	"github.com/noah-isme/fims-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/fims-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/fims-api/pkg/middleware/requestid"
	"github.com/noah-isme/fims-api/pkg/notify"
	"github.com/noah-isme/fims-api/pkg/storage"
)

// @title Facility Inspection Management API
// @version 1.0.0
// @description Back-office API for inspection tasks, anomaly reports and dashboards
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	fileStore, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	inspectionRepo := repository.NewInspectionRepository(db)
	reportRepo := repository.NewReportRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	publisher := notify.NewRedisPublisher(redisClient, cfg.Notify.ChannelPrefix)
	notifier := service.NewNotificationService(publisher, jobs.DispatcherConfig{
		Workers:    cfg.Notify.Workers,
		BufferSize: cfg.Notify.BufferSize,
		Logger:     logr,
	})
	notifier.Start(context.Background())
	defer notifier.Stop()

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthServiceConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})
	inspectionSvc := service.NewInspectionService(inspectionRepo, userRepo, auditRepo, notifier, validate, logr, service.InspectionServiceConfig{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	})
	reportSvc := service.NewReportService(reportRepo, attachmentRepo, inspectionRepo, fileStore, auditRepo, notifier, validate, logr, service.ReportServiceConfig{
		DefaultPageSize:   cfg.Pagination.DefaultPageSize,
		MaxPageSize:       cfg.Pagination.MaxPageSize,
		MaxFileSize:       cfg.Uploads.MaxFileSizeBytes,
		AllowedExtensions: cfg.Uploads.AllowedExtensions,
	})
	dashboardSvc := service.NewDashboardService(dashboardRepo, service.NewCacheService(redisClient), logr, service.DashboardServiceConfig{
		CacheTTL: cfg.Dashboard.CacheTTL,
	})
	metricsSvc := service.NewMetricsService()

	authHandler := handler.NewAuthHandler(authSvc)
	inspectionHandler := handler.NewInspectionHandler(inspectionSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, export.NewPDFExporter())

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))

	anyRole := middleware.RequireRoles(models.RoleAdmin, models.RoleSupervisor, models.RoleInspector)
	managers := middleware.RequireRoles(models.RoleAdmin, models.RoleSupervisor)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	inspections := protected.Group("/inspections")
	inspections.GET("", anyRole, inspectionHandler.List)
	inspections.GET("/:id", anyRole, inspectionHandler.Get)
	inspections.POST("", adminOnly, inspectionHandler.Create)
	inspections.PUT("/:id", managers, inspectionHandler.Update)
	inspections.DELETE("/:id", adminOnly, inspectionHandler.Delete)

	reports := protected.Group("/reports")
	reports.GET("", anyRole, reportHandler.List)
	reports.POST("", middleware.RequireRoles(models.RoleInspector), reportHandler.Create)
	reports.POST("/:id/attachments", anyRole, reportHandler.UploadAttachment)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/summary", anyRole, dashboardHandler.Summary)
	dashboard.GET("/summary/export", anyRole, dashboardHandler.ExportSummary)
	dashboard.GET("/chart-issues", anyRole, dashboardHandler.IssueChart)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
