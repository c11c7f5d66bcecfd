package handlers

import (
	applog "craftroots/internal/log"
	"craftroots/internal/services"
	"craftroots/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

// GET /api/v1/wishlist — entries with populated product fields
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	a := currentAccount(c)
	items, err := h.Wish.List(a.ID)
	if err != nil {
		return respondErr(c, "wishlist.list.fail", err)
	}
	return c.JSON(fiber.Map{"items": items})
}

type wishlistReq struct {
	ProductID string `json:"productId"`
}

// POST /api/v1/wishlist
func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	a := currentAccount(c)
	var req wishlistReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return badRequest(c, "missing productId")
	}
	if err := h.Wish.Save(a.ID, pid); err != nil {
		return respondErr(c, "wishlist.save.fail", err)
	}
	applog.Audit(c, "wishlist.save", map[string]any{"product": pid})
	return c.JSON(fiber.Map{"ok": true})
}

// DELETE /api/v1/wishlist/:productId
func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	a := currentAccount(c)
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return badRequest(c, "missing productId")
	}
	if err := h.Wish.Unsave(a.ID, pid); err != nil {
		return respondErr(c, "wishlist.unsave.fail", err)
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"product": pid})
	return c.JSON(fiber.Map{"ok": true})
}
