package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Parkkangwon/trendwatch/internal/handler"
	"github.com/Parkkangwon/trendwatch/internal/middleware"
	"github.com/Parkkangwon/trendwatch/internal/service"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Video  *handler.VideoHandler
	Auth   *handler.AuthHandler
	Admin  *handler.AdminHandler
	Health *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, auth *service.AuthService, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(middleware.NewSession(auth))

	// Health checks (before API group, no session needed)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus metrics
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	// Catalog routes
	api.Get("/videos/trending", h.Video.GetTrending)
	api.Get("/categories", h.Video.GetCategories)

	// Auth routes
	api.Post("/auth/login", h.Auth.Login)
	api.Post("/auth/logout", h.Auth.Logout)
	api.Post("/auth/register", h.Auth.Register)
	api.Get("/auth/session", h.Auth.Session)

	// Admin routes (authenticated admin sessions only)
	admin := api.Group("/admin", middleware.RequireAdmin())
	admin.Get("/users", h.Admin.ListUsers)
	admin.Post("/users", h.Admin.AddUser)
	admin.Delete("/users/:username", h.Admin.DeleteUser)
}
