package handlers

import (
	"errors"

	"craftroots/internal/domain"
	applog "craftroots/internal/log"
	"craftroots/internal/repos"
	"craftroots/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondErr converts a service/repo failure into the JSON error surface.
// Everything unclassified becomes a generic 500; the cause is only logged.
func respondErr(c *fiber.Ctx, action string, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
	case errors.Is(err, repos.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, repos.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "already exists"})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repos.ErrInsufficientStock), errors.Is(err, services.ErrCartEmpty):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}
