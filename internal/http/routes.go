package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"shoplens/internal/dataset"
)

// publicCORSConfig is the CORS setup for the read-only metrics API; the
// dashboard frontend is served from a different origin in development.
var publicCORSConfig = cors.Config{
	AllowOrigins: "*",
	AllowMethods: "POST,GET,OPTIONS",
	AllowHeaders: "Origin, Content-Type, Accept",
}

// MountRoutes mounts the metrics API and health endpoints on the app.
func MountRoutes(app *fiber.App, store *dataset.Store, logger *slog.Logger) {
	handler := NewMetricsHandler(store, logger)

	app.Get("/health", HealthHandler)

	api := app.Group("/api/v1", cors.New(publicCORSConfig))
	api.Get("/metrics", handler.GetMetrics)
	api.Get("/metrics/financial", handler.GetFinancialMetrics)
	api.Get("/metrics/traffic", handler.GetTrafficMetrics)
	api.Get("/metrics/products", handler.GetProductMetrics)
	api.Post("/refresh", handler.Refresh)
}
