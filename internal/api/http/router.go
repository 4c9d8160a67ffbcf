package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thehatchggs/site-api/internal/api/http/handlers"
	"github.com/thehatchggs/site-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Support         *handlers.SupportHandler
	Tickets         *handlers.TicketsHandler
	AdminTickets    *handlers.AdminTicketsHandler
	Content         *handlers.ContentHandler
	Analytics       *handlers.AnalyticsHandler
	Auth            *handlers.AuthHandler
	Metrics         *handlers.MetricsHandler
	AdminMiddleware *auth.AdminMiddleware
	RateLimiter     *RateLimiter
}

// RegisterRoutes wires HTTP routes. Public endpoints sit under /api behind
// the rate limiter; the admin console lives under /admin behind session or
// bearer authentication.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.RateLimiter.Handle)
	api.Get("/about", cfg.Content.GetAbout)
	api.Get("/merch", cfg.Content.ListMerch)
	api.Post("/support/ask", cfg.Support.Ask)
	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Post("/analytics/events", cfg.Analytics.RecordEvent)

	admin := app.Group("/admin")
	admin.Post("/login", cfg.Auth.Login)

	protected := admin.Group("", cfg.AdminMiddleware.Handle)
	protected.Post("/logout", cfg.Auth.Logout)
	protected.Get("/me", cfg.Auth.Me)

	protected.Get("/tickets", cfg.AdminTickets.ListTickets)
	protected.Get("/tickets/:id", cfg.AdminTickets.GetTicket)
	protected.Patch("/tickets/:id", cfg.AdminTickets.UpdateTicket)
	protected.Post("/tickets/:id/actions", cfg.AdminTickets.TicketAction)

	protected.Put("/about", cfg.Content.UpsertAbout)

	protected.Get("/merch", cfg.Content.AdminListMerch)
	protected.Post("/merch", cfg.Content.CreateMerch)
	protected.Patch("/merch/:id", cfg.Content.UpdateMerch)
	protected.Delete("/merch/:id", cfg.Content.DeleteMerch)

	protected.Get("/knowledge", cfg.Content.ListKnowledge)
	protected.Get("/knowledge/:id", cfg.Content.GetKnowledge)
	protected.Post("/knowledge", cfg.Content.CreateKnowledge)
	protected.Patch("/knowledge/:id", cfg.Content.UpdateKnowledge)
	protected.Delete("/knowledge/:id", cfg.Content.DeleteKnowledge)

	protected.Get("/analytics/summary", cfg.Analytics.Summary)

	protected.Get("/metrics", cfg.Metrics.Report)
}
