package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/queue-monitor/internal/api/http/handlers"
	"github.com/spec-kit/queue-monitor/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Queue          *handlers.QueueHandler
	Alert          *handlers.AlertHandler
	Audio          *handlers.AudioHandler
	Settings       *handlers.SettingsHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Read endpoints are open to the display
// host; mutating endpoints require an operator token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Snapshot)

	api := app.Group("/api")
	api.Get("/queue", cfg.Queue.List)
	api.Get("/stages", cfg.Queue.Stages)
	api.Get("/toasts", cfg.Queue.Toasts)
	api.Get("/alert", cfg.Alert.Active)
	api.Get("/audio", cfg.Audio.Status)
	api.Get("/sounds", cfg.Audio.Sounds)
	api.Get("/settings", cfg.Settings.Get)

	// The unlock gesture stays unauthenticated: it is forwarded on any user
	// interaction, including before login.
	api.Post("/audio/unlock", cfg.Audio.Unlock)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/queue/refresh", cfg.Queue.Refresh)
	protected.Post("/alert/:id/dismiss", cfg.Alert.Dismiss)
	protected.Post("/alert/dismiss-all", cfg.Alert.DismissAll)
	protected.Post("/audio/test", cfg.Audio.Test)
	protected.Put("/settings", cfg.Settings.Update)
}
