package health

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all health API routes with the Fiber application.
// The liveness check is served at /health and readiness at /health/ready.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/health", HealthHandler)

	if handler != nil {
		app.Get("/health/ready", handler.ReadinessHandler)
	}
}
