package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-directory/config"
	deliveryHttp "clinic-directory/internal/delivery/http"
	"clinic-directory/internal/delivery/http/handler"
	"clinic-directory/internal/delivery/http/middleware"
	"clinic-directory/internal/infrastructure/cache"
	"clinic-directory/internal/infrastructure/database"
	"clinic-directory/internal/repository"
	"clinic-directory/internal/service"
	"clinic-directory/internal/usecase"
	"clinic-directory/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	CacheWarmer *service.CacheWarmService
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log := setupLogger(cfg.Log)
	app.Log = log
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize all layers
	app.initializeServer(ctx)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(ctx context.Context) {
	cfg, db, log := app.Config, app.DB, app.Log

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	clinicRepo := repository.NewClinicRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize cache and services
	clinicCache := cache.NewClinicCache(app.RedisClient, cfg.Cache.TTL)
	auditService := service.NewAuditService(log, auditLogRepo)
	app.CacheWarmer = service.NewCacheWarmService(db, log, clinicRepo, clinicCache, cfg.Cache.TTL/2)
	if err := app.CacheWarmer.Warm(ctx); err != nil {
		log.Warnf("Failed to warm clinic cache: %+v", err)
	}
	app.CacheWarmer.Start()

	// Initialize usecases
	clinicUsecase := usecase.NewClinicUsecase(db, log, clinicRepo, clinicCache, auditService)
	directoryUsecase := usecase.NewDirectoryUsecase(log, clinicUsecase)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	clinicHandler := handler.NewClinicHandler(clinicUsecase, customValidator)
	directoryHandler := handler.NewDirectoryHandler(directoryUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins...)

	// Initialize router
	router := deliveryHttp.NewRouter(clinicHandler, directoryHandler, auditLogHandler, loggingMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and blocks until it stops or a shutdown signal arrives
func (app *App) Run() error {
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	return app.waitForShutdown(errCh)
}

// waitForShutdown blocks until an interrupt signal is received or the server fails
func (app *App) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var serveErr error
	select {
	case <-quit:
		app.Log.Info("Shutting down server...")
	case serveErr = <-errCh:
		app.Log.Errorf("Failed to start server: %v", serveErr)
	}

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
	return serveErr
}

// Close stops background work and closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.CacheWarmer != nil {
		app.CacheWarmer.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
