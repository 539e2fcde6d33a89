package routes

import (
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/config"
	"github.com/firewatchhq/firewatch-backend/internal/handlers"
	"github.com/firewatchhq/firewatch-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	incidentHandler *handlers.IncidentHandler,
	dashboardHandler *handlers.DashboardHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Patch("/auth/me", middleware.JWTProtected(cfg), authHandler.UpdateMe)

	// Incident reporting is open to anonymous callers; everything else
	// on incidents requires authentication.
	api.Post("/incidents", middleware.OptionalJWT(cfg), incidentHandler.Create)
	api.Get("/incidents", middleware.JWTProtected(cfg), incidentHandler.List)
	api.Get("/incidents/:id", middleware.JWTProtected(cfg), incidentHandler.Get)
	api.Get("/incidents/:id/updates", middleware.JWTProtected(cfg), incidentHandler.ListUpdates)
	api.Patch("/incidents/:id/status",
		middleware.JWTProtected(cfg),
		middleware.ResponderRequired(db),
		incidentHandler.UpdateStatus,
	)

	// Fire team dashboard
	api.Get("/dashboard/stats",
		middleware.JWTProtected(cfg),
		middleware.ResponderRequired(db),
		dashboardHandler.Stats,
	)
}
