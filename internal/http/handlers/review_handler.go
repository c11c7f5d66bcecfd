package handlers

import (
	"errors"

	applog "craftroots/internal/log"
	"craftroots/internal/repos"
	"craftroots/internal/services"
	"craftroots/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

type reviewReq struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Body      string `json:"body"`
}

// POST /api/v1/reviews — one per (product, account)
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	a := currentAccount(c)
	var req reviewReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return badRequest(c, "missing productId")
	}
	rv, err := h.Reviews.Submit(pid, a.ID, req.Rating, req.Body)
	if err != nil {
		if errors.Is(err, repos.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "you have already reviewed this product"})
		}
		return respondErr(c, "reviews.submit.fail", err)
	}
	applog.Audit(c, "reviews.submit", map[string]any{"product": pid, "review_id": rv.ID})
	return c.Status(fiber.StatusCreated).JSON(rv)
}

// GET /api/v1/products/:id/reviews
func (h *ReviewHandler) ListByProduct(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "missing product id")
	}
	out, err := h.Reviews.ListByProduct(pid)
	if err != nil {
		return respondErr(c, "reviews.list.fail", err)
	}
	return c.JSON(fiber.Map{"reviews": out})
}

// POST /api/v1/reviews/:id/helpful
func (h *ReviewHandler) VoteHelpful(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "missing review id")
	}
	if err := h.Reviews.VoteHelpful(id); err != nil {
		return respondErr(c, "reviews.helpful.fail", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
