package routes

import (
	"github.com/gofiber/fiber/v2"

	"retailbrain/database"
	"retailbrain/handlers"
	"retailbrain/middleware"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler, store *database.Store) {
	api := app.Group("/api/v1")

	api.Get("/health", h.HandleHealth)
	api.Post("/upload", h.HandleUpload)

	// --- Analytics over the uploaded dataset ---
	requireData := middleware.DatasetRequired(store)
	api.Get("/dashboard/metrics", requireData, h.HandleDashboardMetrics)
	api.Get("/forecast", requireData, h.HandleForecast)
	api.Post("/copilot/chat", requireData, h.HandleCopilotChat)
}
