package http

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Benchmark engine
		api.Get("/schema", handler.GetSchema)
		api.Get("/clusters", handler.GetClusters)
		api.Post("/analyze", handler.Analyze)

		// Assessments across metals, stored and exportable
		api.Post("/assess", handler.Assess)
		api.Get("/assessments", handler.GetAssessments)
		api.Post("/export", handler.Export)

		// Model estimate (proxies to Python ML service)
		api.Post("/predict", handler.Predict)

		// Quick calculator and catalogue
		api.Post("/calculate", handler.Calculate)
		api.Get("/materials", handler.GetMaterials)
	}
}
