package handlers

import (
	"time"

	"github.com/phase2-labs/demo-api/apis/common"
	"github.com/phase2-labs/demo-api/apis/health"
	"github.com/phase2-labs/demo-api/internal/version"
	"github.com/phase2-labs/demo-api/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// WelcomeMessage is returned by the root endpoint.
const WelcomeMessage = "Welcome to FastAPI with Alpine Docker! "

// apiInfo is the static descriptor served by /api/info.
var apiInfo = fiber.Map{
	"name":           "FastAPI Demo API",
	"version":        version.APIVersion,
	"framework":      "FastAPI",
	"python_version": "3.11",
	"server":         "uvicorn",
	"base_image":     "python:3.11-alpine",
	"docs":           "/docs",
	"redoc":          "/redoc",
}

// SetupRoutes configures all HTTP routes of the service.
// readiness and collector are optional; their routes are skipped when nil.
func SetupRoutes(app *fiber.App, readiness *health.Handler, collector *metrics.Collector) {
	health.RegisterRoutes(app, readiness)

	if collector != nil {
		app.Get("/metrics", collector.Handler())
	}

	app.Get("/api/info", InfoHandler)

	// Root endpoint
	app.Get("/", RootHandler)
}

// RootHandler returns the welcome message with the version and current time.
func RootHandler(c *fiber.Ctx) error {
	return c.JSON(common.MessageResponse{
		Message:   WelcomeMessage,
		Version:   version.APIVersion,
		Timestamp: time.Now().UTC().Format(common.TimestampLayout),
	})
}

// InfoHandler returns the static API descriptor.
func InfoHandler(c *fiber.Ctx) error {
	return c.JSON(apiInfo)
}
