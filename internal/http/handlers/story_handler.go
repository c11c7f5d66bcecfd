package handlers

import (
	"errors"

	"craftroots/internal/repos"
	"craftroots/internal/services"
	"craftroots/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type StoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/stories/:productId
func (h *StoryHandler) ByProduct(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return badRequest(c, "missing productId")
	}
	st, err := h.Catalog.GetStory(pid)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return notFound(c, "No story found for this product")
		}
		return respondErr(c, "stories.get.fail", err)
	}
	return c.JSON(st)
}
