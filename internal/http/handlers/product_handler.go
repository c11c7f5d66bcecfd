package handlers

import (
	"strconv"

	applog "craftroots/internal/log"
	"craftroots/internal/services"
	"craftroots/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// categoryQuery validates the optional ?category= filter; empty means all.
func categoryQuery(c *fiber.Ctx) (string, bool) {
	raw := c.Query("category")
	if raw == "" {
		return "", true
	}
	return validate.Q(raw)
}

// GET /api/v1/products?category=&page=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	category, ok := categoryQuery(c)
	if !ok {
		return badRequest(c, "invalid category")
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))
	out, err := h.Catalog.ListProducts(category, page, 12)
	if err != nil {
		return respondErr(c, "products.list.fail", err)
	}
	return c.JSON(fiber.Map{"products": out})
}

// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "missing product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return respondErr(c, "products.get.fail", err)
	}
	return c.JSON(p)
}

// GET /api/v1/products/count?category=  — in-stock products only
func (h *ProductHandler) Count(c *fiber.Ctx) error {
	category, ok := categoryQuery(c)
	if !ok {
		return badRequest(c, "invalid category")
	}
	n, err := h.Catalog.CountInStock(category)
	if err != nil {
		return respondErr(c, "products.count.fail", err)
	}
	return c.JSON(fiber.Map{"count": n})
}

type rateReq struct {
	Value int `json:"value"`
}

// POST /api/v1/products/:id/ratings
func (h *ProductHandler) Rate(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "missing product id")
	}
	var req rateReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	a := currentAccount(c)
	if err := h.Catalog.RateProduct(id, a.ID, req.Value); err != nil {
		return respondErr(c, "products.rate.fail", err)
	}
	applog.Audit(c, "products.rate", map[string]any{"product": id, "value": req.Value})
	return c.JSON(fiber.Map{"ok": true})
}
