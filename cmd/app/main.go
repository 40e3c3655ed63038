package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fulfillment/cmd"
	inhttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/courierrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/ratingrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := getConfigs(logger)

	gormDB, err := openDatabase(config)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = migrate(gormDB); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(config, gormDB, logger)

	jobManager := root.CreateJobManager(config)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.OFF)
	e.Use(inhttp.NewRequestLogMiddleware(logger))
	e.Use(inhttp.NewTimeoutMiddleware(config.RequestTimeout))

	server := root.CreateHTTPServer()
	server.RegisterRoutes(e, inhttp.NewAuthMiddleware(root.IdentityClient()))

	go func() {
		if startErr := e.Start("0.0.0.0:" + config.HTTPPort); startErr != nil {
			logger.Info("http server stopped", "error", startErr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.AssignmentDTO{},
		&courierrepo.CourierDTO{},
		&ratingrepo.RatingDTO{},
	)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, using process environment")
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: envOr("DB_PASSWORD", "postgres"),
		DBName:     envOr("DB_NAME", "fulfillment"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		IdentityServiceURL:       envOr("IDENTITY_SERVICE_URL", "http://localhost:8081"),
		IdentityRetryMaxAttempts: envInt("IDENTITY_RETRY_MAX_ATTEMPTS", 3),
		IdentityRetryBaseDelay:   envDuration("IDENTITY_RETRY_BASE_DELAY", 100*time.Millisecond),
		IdentityRetryMaxDelay:    envDuration("IDENTITY_RETRY_MAX_DELAY", time.Second),

		RequestTimeout: envDuration("REQUEST_TIMEOUT", 5*time.Second),

		CompletionSchedule: envOr("COMPLETION_SCHEDULE", "*/5 * * * *"),
		CompletionGrace:    envDuration("COMPLETION_GRACE", 24*time.Hour),
		PurgeSchedule:      envOr("PURGE_SCHEDULE", "0 3 * * *"),
		PurgeRetention:     envDays("PURGE_RETENTION_DAYS", 0),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

// envDays reads a retention expressed in whole days. Zero keeps the purge
// job disabled.
func envDays(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * 24 * time.Hour
}
