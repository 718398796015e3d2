package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/painting-service/internal/api/http/handlers"
	"github.com/spec-kit/painting-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Painting       *handlers.PaintingHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)

	painting := app.Group("/painting", cfg.AuthMiddleware.Handle)
	painting.Get("", cfg.Painting.Get)
	painting.Post("", cfg.Painting.Save)
}
