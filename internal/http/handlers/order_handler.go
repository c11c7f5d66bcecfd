package handlers

import (
	"craftroots/internal/domain"
	applog "craftroots/internal/log"
	"craftroots/internal/services"
	"craftroots/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Order *services.OrderService
}

// POST /api/v1/orders — checkout the session's cart
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	a := currentAccount(c)

	orderID, err := h.Order.Place(sid, a.ID)
	if err != nil {
		return respondErr(c, "order.place.fail", err)
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": orderID, "account_id": a.ID})

	o, items, err := h.Order.Get(orderID)
	if err != nil {
		return respondErr(c, "order.get.fail", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": o, "items": items})
}

// GET /api/v1/orders/:id — owner or admin only
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "order not found")
	}

	o, items, err := h.Order.Get(oid)
	if err != nil {
		return respondErr(c, "order.get.fail", err)
	}

	a := currentAccount(c)
	if a.ID != o.AccountID && a.Role != domain.RoleAdmin {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return notFound(c, "order not found")
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}

// GET /api/v1/orders — orders for the current account, newest first
func (h *OrderHandler) History(c *fiber.Ctx) error {
	a := currentAccount(c)
	orders, err := h.Order.History(a.ID)
	if err != nil {
		return respondErr(c, "orders.history.fail", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}
