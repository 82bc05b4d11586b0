package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kopytm/home-ppr-app/api/swagger"
	"github.com/kopytm/home-ppr-app/internal/handler"
	"github.com/kopytm/home-ppr-app/internal/middleware"
	"github.com/kopytm/home-ppr-app/internal/repository"
	"github.com/kopytm/home-ppr-app/internal/service"
	"github.com/kopytm/home-ppr-app/pkg/cache"
	"github.com/kopytm/home-ppr-app/pkg/config"
	"github.com/kopytm/home-ppr-app/pkg/database"
	"github.com/kopytm/home-ppr-app/pkg/export"
	"github.com/kopytm/home-ppr-app/pkg/logger"
	corsmiddleware "github.com/kopytm/home-ppr-app/pkg/middleware/cors"
	reqidmiddleware "github.com/kopytm/home-ppr-app/pkg/middleware/requestid"
	"github.com/kopytm/home-ppr-app/pkg/storage"
)

// @title Home PPR API
// @version 0.1.0
// @description Household equipment maintenance tracker
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		store service.EquipmentStore
		ready func(ctx context.Context) error
	)
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		defer db.Close() //nolint:errcheck

		sqlStore := repository.NewSQLStore(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := sqlStore.EnsureSchema(ctx); err != nil {
			cancel()
			logr.Sugar().Fatalw("failed to ensure schema", "error", err)
		}
		cancel()

		store = sqlStore
		ready = db.PingContext
	default:
		store = repository.NewCSVStore(cfg.Store.CSVPath, logr)
	}

	metrics := service.NewMetricsService()
	store = service.InstrumentStore(store, metrics)

	var cacheRepo service.CacheRepository
	if cfg.Dashboard.CacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		} else {
			defer client.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, cacheRepo != nil)

	photoStorage, err := storage.NewLocalStorage(cfg.Photos.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init photo storage", "error", err)
	}

	validate := validator.New()

	equipmentSvc := service.NewEquipmentService(store, cacheSvc, validate, logr)
	dashboardSvc := service.NewDashboardService(store, cacheSvc, logr)
	exportSvc := service.NewExportService(store, export.NewCSVExporter(), export.NewPDFExporter(),
		cfg.Export.ICSProductID, cfg.Export.UIDDomain, logr)
	authSvc := service.NewAuthService(cfg.Auth, validate, logr)
	photoSvc := service.NewPhotoService(equipmentSvc, photoStorage, logr)

	horizon := cfg.Export.DefaultHorizonDays
	equipmentHandler := handler.NewEquipmentHandler(equipmentSvc, horizon)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, horizon)
	exportHandler := handler.NewExportHandler(exportSvc, horizon)
	authHandler := handler.NewAuthHandler(authSvc)
	photoHandler := handler.NewPhotoHandler(photoSvc, cfg.Photos.MaxFileSizeBytes)
	metricsHandler := handler.NewMetricsHandler(metrics, ready)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/equipment", equipmentHandler.List)
	api.GET("/equipment/upcoming", equipmentHandler.Upcoming)
	api.GET("/equipment/overdue", equipmentHandler.Overdue)
	api.GET("/equipment/:id", equipmentHandler.Get)
	api.GET("/equipment/:id/photo", photoHandler.Get)

	api.GET("/dashboard/summary", dashboardHandler.Summary)
	api.GET("/dashboard/monthly", dashboardHandler.Monthly)

	api.GET("/export/ics", exportHandler.ICS)
	api.GET("/export/csv", exportHandler.CSV)
	api.GET("/export/pdf", exportHandler.PDF)

	protected := api.Group("", middleware.JWT(authSvc))
	protected.POST("/equipment", equipmentHandler.Add)
	protected.PUT("/equipment/:id", equipmentHandler.Edit)
	protected.POST("/equipment/:id/service", equipmentHandler.MarkServiced)
	protected.POST("/equipment/:id/archive", equipmentHandler.ToggleArchive)
	protected.POST("/equipment/:id/photo", photoHandler.Upload)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr, "env", cfg.Env, "store", cfg.Store.Backend, "auth", authSvc.Enabled())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
