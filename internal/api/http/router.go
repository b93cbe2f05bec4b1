package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/team-directory/internal/api/http/handlers"
	"github.com/spec-kit/team-directory/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Members        *handlers.MembersHandler
	Session        *handlers.SessionHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The directory endpoints are open to the
// internal network; deletion additionally requires an authenticated admin.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Session.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Session.Logout)

	members := app.Group("/members")
	members.Get("/", cfg.Members.List)
	members.Post("/", cfg.Members.Create)
	members.Get("/:id", cfg.Members.Get)
	members.Put("/:id", cfg.Members.Update)
	members.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Members.Delete)
}
