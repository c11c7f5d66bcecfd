package handlers

import (
	applog "craftroots/internal/log"
	"craftroots/internal/services"
	"craftroots/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		return respondErr(c, "cart.view.fail", err)
	}
	return c.JSON(cv)
}

type cartAddReq struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// POST /api/v1/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req cartAddReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return badRequest(c, "missing productId")
	}
	if err := h.Cart.Add(sid, pid, validate.Qty(req.Qty)); err != nil {
		return respondErr(c, "cart.add.fail", err)
	}
	applog.Audit(c, "cart.add", map[string]any{"product": pid, "qty": req.Qty})
	cv, err := h.Cart.View(sid)
	if err != nil {
		return respondErr(c, "cart.view.fail", err)
	}
	return c.JSON(cv)
}
