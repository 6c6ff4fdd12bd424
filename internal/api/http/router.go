package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/adoption-client/internal/api/http/handlers"
	"github.com/spec-kit/adoption-client/internal/auth"
	"github.com/spec-kit/adoption-client/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Animals        *handlers.AnimalsHandler
	Shelters       *handlers.SheltersHandler
	Adoptions      *handlers.AdoptionsHandler
	Contact        *handlers.ContactHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes under /api.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	protected := cfg.AuthMiddleware.Handle
	admin := auth.RequireRole(domain.RoleAdmin)
	reviewer := auth.RequireRole(domain.RoleAdmin, domain.RoleShelter)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)
	authGroup.Post("/verify-email", cfg.Auth.VerifyEmail)
	authGroup.Get("/me", protected, cfg.Auth.Me)
	authGroup.Put("/profile", protected, cfg.Auth.UpdateProfile)
	authGroup.Put("/change-password", protected, cfg.Auth.ChangePassword)

	animals := api.Group("/animals", protected)
	animals.Get("/", cfg.Animals.List)
	animals.Get("/:id", cfg.Animals.Get)
	animals.Post("/", admin, cfg.Animals.Create)
	animals.Put("/:id", admin, cfg.Animals.Update)
	animals.Delete("/:id", admin, cfg.Animals.Delete)

	shelters := api.Group("/shelters", protected)
	shelters.Get("/", cfg.Shelters.List)
	shelters.Get("/:id", cfg.Shelters.Get)
	shelters.Post("/", admin, cfg.Shelters.Create)
	shelters.Put("/:id", admin, cfg.Shelters.Update)
	shelters.Delete("/:id", admin, cfg.Shelters.Delete)

	adoptions := api.Group("/adoptions", protected)
	adoptions.Get("/", cfg.Adoptions.List)
	adoptions.Get("/mine", cfg.Adoptions.Mine)
	adoptions.Get("/stats", reviewer, cfg.Adoptions.Stats)
	adoptions.Get("/:id", cfg.Adoptions.Get)
	adoptions.Post("/", cfg.Adoptions.Create)
	adoptions.Put("/:id", reviewer, cfg.Adoptions.Update)
	adoptions.Patch("/:id/approve", reviewer, cfg.Adoptions.Approve)
	adoptions.Patch("/:id/reject", reviewer, cfg.Adoptions.Reject)
	adoptions.Patch("/:id/complete", reviewer, cfg.Adoptions.Complete)
	adoptions.Delete("/:id", cfg.Adoptions.Cancel)

	api.Post("/contact", cfg.Contact.Send)
	contact := api.Group("/contact", protected, admin)
	contact.Get("/", cfg.Contact.List)
	contact.Get("/:id", cfg.Contact.Get)
	contact.Put("/:id", cfg.Contact.Update)
	contact.Delete("/:id", cfg.Contact.Delete)
}
