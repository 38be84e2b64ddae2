package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/credential-service/internal/api/http/handlers"
	"github.com/spec-kit/credential-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Auth.Register)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/protected", cfg.AuthMiddleware.Handle, cfg.Auth.Protected)
}
