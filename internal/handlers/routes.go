package handlers

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	Health     *HealthHandler
	Comparison *ComparisonHandler
	Upload     *UploadHandler
}

func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/", h.Health.HandleRoot)
	app.Get("/health", h.Health.HandleHealth)

	api := app.Group("/api")
	api.Post("/compare", h.Comparison.HandleCompare)
	api.Post("/compare/upload", h.Upload.HandleUpload)
	api.Get("/history", h.Comparison.HandleHistory)
	api.Get("/comparison/:id", h.Comparison.HandleGetComparison)
	api.Delete("/comparison/:id", h.Comparison.HandleDeleteComparison)
	api.Get("/comparison/:id/similar", h.Comparison.HandleSimilar)
}
