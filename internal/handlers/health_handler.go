package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rolereader/resume-matcher/internal/models"
	"rolereader/resume-matcher/internal/services"
)

type HealthHandler struct {
	nlp     services.NLPService
	version string
}

func NewHealthHandler(nlp services.NLPService, version string) *HealthHandler {
	return &HealthHandler{nlp: nlp, version: version}
}

// HandleRoot handles GET /
func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "AI Resume Comparison API",
		"status":  "healthy",
	})
}

// HandleHealth handles GET /health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:   "healthy",
		NLPReady: h.nlp.IsReady(),
		Version:  h.version,
	})
}
