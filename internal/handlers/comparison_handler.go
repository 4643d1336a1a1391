package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rolereader/resume-matcher/internal/models"
	"rolereader/resume-matcher/internal/services"
)

type ComparisonHandler struct {
	comparisonService services.ComparisonService
}

func NewComparisonHandler(comparisonService services.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisonService: comparisonService}
}

// HandleCompare handles POST /api/compare
func (h *ComparisonHandler) HandleCompare(c *fiber.Ctx) error {
	var req models.ComparisonRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	resp, err := h.comparisonService.Compare(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// HandleHistory handles GET /api/history
func (h *ComparisonHandler) HandleHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	offset := c.QueryInt("offset", 0)

	history, err := h.comparisonService.History(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(history)
}

// HandleGetComparison handles GET /api/comparison/:id
func (h *ComparisonHandler) HandleGetComparison(c *fiber.Ctx) error {
	id, err := comparisonID(c)
	if err != nil {
		return badRequest(c, "Invalid comparison ID")
	}

	resp, err := h.comparisonService.Details(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// HandleDeleteComparison handles DELETE /api/comparison/:id
func (h *ComparisonHandler) HandleDeleteComparison(c *fiber.Ctx) error {
	id, err := comparisonID(c)
	if err != nil {
		return badRequest(c, "Invalid comparison ID")
	}

	if err := h.comparisonService.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(models.MessageResponse{Message: "Comparison deleted successfully"})
}

// HandleSimilar handles GET /api/comparison/:id/similar
func (h *ComparisonHandler) HandleSimilar(c *fiber.Ctx) error {
	id, err := comparisonID(c)
	if err != nil {
		return badRequest(c, "Invalid comparison ID")
	}

	similar, err := h.comparisonService.Similar(c.UserContext(), id, c.QueryInt("limit", 5))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(similar)
}

func comparisonID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
