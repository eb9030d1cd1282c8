package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	assetapp "github.com/buildcore/backend/internal/application/asset"
	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/infrastructure/cache"
	"github.com/buildcore/backend/internal/infrastructure/config"
	"github.com/buildcore/backend/internal/infrastructure/event"
	"github.com/buildcore/backend/internal/infrastructure/logger"
	"github.com/buildcore/backend/internal/infrastructure/persistence"
	"github.com/buildcore/backend/internal/interfaces/http/handler"
	"github.com/buildcore/backend/internal/interfaces/http/middleware"
	"github.com/buildcore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Asset Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	assetRepo := persistence.NewGormAssetRepository(db.DB)
	scheduleRepo := persistence.NewGormScheduleRepository(db.DB)
	generationWriter := persistence.NewGormGenerationWriter(db.DB)
	historyRepo := persistence.NewGormLocationHistoryRepository(db.DB)
	grnRepo := persistence.NewGormGRNRepository(db.DB)

	// Generation lock: Redis when enabled, in-process fallback otherwise.
	// The in-process lock only guards against concurrent runs within a
	// single instance.
	var generationLock asset.GenerationLock
	if cfg.Redis.Enabled {
		redisLock, err := cache.NewRedisGenerationLock(cache.RedisGenerationLockConfig{
			Addr:     cfg.Redis.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisLock.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		generationLock = redisLock
		log.Info("Redis generation lock enabled", zap.String("addr", cfg.Redis.RedisAddr()))
	} else {
		generationLock = cache.NewInMemoryGenerationLock()
		log.Warn("Redis disabled, using in-process generation lock")
	}

	// Initialize event bus and subscribers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditSubscriber(log))

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	assetService := assetapp.NewAssetService(assetRepo, grnRepo, eventBus)
	depreciationService := assetapp.NewDepreciationService(
		assetRepo, scheduleRepo, generationWriter, generationLock, eventBus, log,
	)
	depreciationService.SetLockTTL(cfg.Lock.TTL)
	locationService := assetapp.NewLocationService(assetRepo, historyRepo, eventBus)
	grnService := assetapp.NewGRNService(grnRepo, eventBus)

	// Initialize HTTP handlers
	assetHandler := handler.NewAssetHandler(assetService)
	depreciationHandler := handler.NewDepreciationHandler(depreciationService)
	locationHandler := handler.NewLocationHandler(locationService)
	grnHandler := handler.NewGRNHandler(grnService)
	systemHandler := handler.NewSystemHandler(db.Ping)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	assetRoutes := router.NewDomainGroup("assets", "/assets")

	// Depreciation routes. Registered before the :id routes for readability,
	// gin resolves static segments ahead of parameters either way.
	assetRoutes.POST("/depreciation/generate", depreciationHandler.Generate)
	assetRoutes.GET("/depreciation/schedules", depreciationHandler.ListSchedules)
	assetRoutes.GET("/depreciation/summary", depreciationHandler.Summary)

	// Location history routes
	assetRoutes.GET("/locations", locationHandler.ListHistory)
	assetRoutes.POST("/locations", locationHandler.RecordMovement)

	// Goods receipt note routes
	assetRoutes.GET("/grns", grnHandler.List)
	assetRoutes.POST("/grns", grnHandler.Create)
	assetRoutes.GET("/grns/:id", grnHandler.Get)
	assetRoutes.PUT("/grns/:id", grnHandler.Replace)

	// Asset ledger routes
	assetRoutes.POST("", assetHandler.Create)
	assetRoutes.GET("", assetHandler.List)
	assetRoutes.GET("/:id", assetHandler.Get)
	assetRoutes.PUT("/:id", assetHandler.Update)
	assetRoutes.GET("/:id/locations", locationHandler.ListAssetHistory)

	// Lifecycle transitions
	assetRoutes.POST("/:id/allocate", assetHandler.Allocate)
	assetRoutes.POST("/:id/release", assetHandler.Release)
	assetRoutes.POST("/:id/start-maintenance", assetHandler.StartMaintenance)
	assetRoutes.POST("/:id/end-maintenance", assetHandler.EndMaintenance)
	assetRoutes.POST("/:id/dispose", assetHandler.Dispose)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(assetRoutes).Register(systemRoutes)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
