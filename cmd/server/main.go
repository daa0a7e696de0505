package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/apps/chat"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/apps/feeds"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/apps/pets"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/ratelimit"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdoutHandler := logging.Setup(cfg.AppEnv)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.MigrateCore(db); err != nil {
		slog.Error("core migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdoutHandler, pgLogHandler)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cleanupDone)

	// File storage
	ctx := context.Background()
	store, err := storage.New(ctx, cfg)
	if err != nil {
		slog.Error("file storage init failed", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	slog.Info("file storage ready", "driver", store.Name())

	// Rate limiter counters: shared through Redis when configured
	var stores routes.LimiterStores
	var closers []io.Closer
	if cfg.RedisURL != "" {
		apiStore, err := ratelimit.NewRedisStorage(cfg.RedisURL, "furrykids:rl:api:")
		if err != nil {
			slog.Error("redis limiter storage failed", "error", err)
			os.Exit(1)
		}
		authStore, err := ratelimit.NewRedisStorage(cfg.RedisURL, "furrykids:rl:auth:")
		if err != nil {
			slog.Error("redis limiter storage failed", "error", err)
			os.Exit(1)
		}
		stores = routes.LimiterStores{API: apiStore, Auth: authStore}
		closers = append(closers, apiStore, authStore)
		slog.Info("rate limiter using redis")
	}

	// Services
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	moderationService := services.NewModerationService()
	aiClient := chat.NewClient(cfg)

	// Feature modules
	plugins := []apps.Plugin{
		pets.New(),
		chat.New(aiClient),
		feeds.New(),
	}

	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(db, models); err != nil {
				slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(db, store.Name(), aiClient.Configured())

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    int(cfg.MaxUploadSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(metrics.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Locally stored uploads
	if local, ok := store.(*storage.LocalStore); ok {
		app.Static(local.PublicPath(), local.Dir(), fiber.Static{MaxAge: 3600})
	}

	// Routes
	deps := &apps.Deps{DB: db, Config: cfg, Store: store, Moderation: moderationService}
	routes.Setup(app, cfg, deps, authHandler, userHandler, healthHandler, stores, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	for _, c := range closers {
		if err := c.Close(); err != nil {
			slog.Error("close error", "error", err)
		}
	}
	if gcs, ok := store.(*storage.GCSStore); ok {
		if err := gcs.Close(); err != nil {
			slog.Error("storage close error", "error", err)
		}
	}

	// Close database connections
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"request_id", handlers.RequestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
