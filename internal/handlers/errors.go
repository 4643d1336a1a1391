package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"rolereader/resume-matcher/internal/models"
	"rolereader/resume-matcher/internal/services"
)

// ErrorHandler renders any error that escapes a handler as {detail}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, err)
}

func writeError(c *fiber.Ctx, err error) error {
	code, detail := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v\n", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(models.ErrorResponse{Detail: detail})
}

func statusFor(err error) (int, string) {
	var vErr *services.ValidationError
	var fErr *fiber.Error

	switch {
	case errors.As(err, &vErr):
		return fiber.StatusBadRequest, vErr.Message
	case errors.Is(err, services.ErrComparisonNotFound):
		return fiber.StatusNotFound, "Comparison not found"
	case errors.Is(err, services.ErrSemanticSearchDisabled):
		return fiber.StatusServiceUnavailable, "Semantic search is not configured"
	case errors.As(err, &fErr):
		return fErr.Code, fErr.Message
	default:
		return fiber.StatusInternalServerError, err.Error()
	}
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Detail: detail})
}
