package routes

import (
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/ratelimit"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// LimiterStores holds the counters backing the API and auth limiters.
// Nil stores keep counters in process memory.
type LimiterStores struct {
	API  fiber.Storage
	Auth fiber.Storage
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	deps *apps.Deps,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
	stores LimiterStores,
	plugins []apps.Plugin,
) {
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	jwt := middleware.JWTProtected(cfg)
	activeUser := middleware.ActiveUser(deps.DB)

	// Auth: stricter per-IP limit
	auth := app.Group("/auth", ratelimit.New(cfg.AuthRateLimitMax, cfg.RateLimitWindow, stores.Auth))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", jwt, activeUser, authHandler.Logout)
	auth.Get("/user", jwt, activeUser, authHandler.CurrentUser)
	auth.Delete("/account", jwt, activeUser, authHandler.DeleteAccount)

	api := app.Group("/api", ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow, stores.API))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Authentication is mounted per prefix so unknown /api paths still 404.
	protected := map[string]bool{}
	protect := func(prefix string) {
		if !protected[prefix] {
			protected[prefix] = true
			api.Use(prefix, jwt, activeUser)
		}
	}

	protect("/users")
	users := api.Group("/users")
	users.Get("/profile", userHandler.Profile)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Delete("/profile", userHandler.Deactivate)
	users.Put("/password", userHandler.ChangePassword)
	users.Get("/list", middleware.AdminRequired(cfg), userHandler.List)
	users.Get("/:id", userHandler.Get)

	for _, p := range plugins {
		for _, prefix := range p.RoutePrefixes() {
			protect(prefix)
		}
		p.RegisterRoutes(api, deps)
	}
}
