// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"booking-platform/internal/cache"
	"booking-platform/internal/config"
	"booking-platform/internal/domain"
	"booking-platform/internal/handler"
	"booking-platform/internal/metrics"
	postgresRepo "booking-platform/internal/repository/postgres"
	"booking-platform/internal/service"
	"booking-platform/pkg/logger"
)

// gormWriter wraps our logger to implement gorm's logger.Writer interface
type gormWriter struct {
	logger *logger.Logger
}

// Printf implements the logger.Writer interface
func (w *gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Info(fmt.Sprintf(format, args...))
}

func main() {
	// Docker health check: probe the running server
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get("http://localhost:" + port + "/health")
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load environment variables from .env file (development only)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appLogger := logger.NewLogger()
	defer appLogger.Sync()
	appLogger.Info("Starting booking platform")

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatalw("Failed to load configuration", "error", err)
	}

	appLogger = appLogger.WithFields(map[string]interface{}{
		"service": "booking-platform",
		"env":     cfg.Environment,
	})

	m := metrics.New("booking")

	db, err := initDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize database", "error", err)
	}

	// The cache never blocks startup: an unreachable store leaves it
	// disconnected and every read falls through to PostgreSQL
	cacheOpts, err := cache.OptionsFromConfig(cfg.Redis, appLogger, m)
	if err != nil {
		appLogger.Fatalw("Invalid cache configuration", "error", err)
	}
	redisCache, err := cache.NewRedisCache(cacheOpts)
	if err != nil {
		appLogger.Fatalw("Failed to create cache client", "error", err)
	}

	// Repository layer
	userRepo := postgresRepo.NewUserRepository(db)
	bookingRepo := postgresRepo.NewBookingRepository(db)

	// Service layer
	sessions := service.NewSessionService(postgresRepo.NewSessionRepository(db), userRepo, redisCache, cfg, appLogger)
	vehicles := service.NewVehicleService(postgresRepo.NewVehicleRepository(db), redisCache, appLogger)
	pricing := service.NewPricingService(postgresRepo.NewPricingRepository(db), redisCache, appLogger)
	services := handler.Services{
		Users:    service.NewUserService(userRepo, bookingRepo, redisCache, appLogger),
		Sessions: sessions,
		Vehicles: vehicles,
		Bookings: service.NewBookingService(bookingRepo, vehicles, pricing, redisCache, appLogger),
		Pricing:  pricing,
		Blog:     service.NewBlogService(postgresRepo.NewBlogRepository(db), redisCache, appLogger),
		Settings: service.NewSystemConfigService(postgresRepo.NewSystemConfigRepository(db), redisCache, appLogger),
	}

	admin := handler.NewAdminHandler(redisCache, sessions, pingDatabase(db), appLogger)
	router := handler.NewRouter(cfg, services, admin, m, appLogger)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		appLogger.Infow("Server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("Failed to start server", "error", err)
		}
	}()

	stopPurge := make(chan struct{})
	go purgeSessions(sessions, appLogger, stopPurge)

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	close(stopPurge)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("Server forced to shutdown", "error", err)
	}

	if err := redisCache.Close(); err != nil {
		appLogger.Errorw("Error closing Redis connection", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	appLogger.Info("Server exited successfully")
}

// initDatabase opens PostgreSQL with connection pooling and migrates the schema
func initDatabase(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	gormLog := gormlogger.New(
		&gormWriter{logger: log},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var db *gorm.DB
	var err error

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger:                 gormLog,
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
			TranslateError:         true,
		})
		if err == nil {
			break
		}

		log.Warnw("Failed to connect to database, retrying...", "attempt", i+1, "error", err)
		time.Sleep(5 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(domain.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Info("Database connection established successfully")
	return db, nil
}

func pingDatabase(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// purgeSessions deletes expired sessions once an hour until stop closes
func purgeSessions(sessions service.SessionService, log *logger.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if _, err := sessions.PurgeExpired(ctx); err != nil {
				log.Warnw("Session purge failed", "error", err)
			}
			cancel()
		}
	}
}
