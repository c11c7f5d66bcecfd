package handlers

import (
	"craftroots/internal/domain"
	applog "craftroots/internal/log"
	"craftroots/internal/services"
	"craftroots/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Catalog   *services.CatalogService
	Order     *services.OrderService
	Inquiries *services.InquiryService
}

type orderStatusReq struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// PUT /api/v1/admin/orders/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req orderStatusReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.OrderID == "" || req.Status == "" {
		return badRequest(c, "missing orderId or status")
	}
	status := domain.OrderStatus(req.Status)
	if !status.Valid() {
		return badRequest(c, "Invalid status value")
	}
	o, err := h.Order.Transition(req.OrderID, status)
	if err != nil {
		return respondErr(c, "admin.orders.update.fail", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": req.OrderID, "status": req.Status})
	return c.JSON(o)
}

// GET /api/v1/admin/orders
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	ords, err := h.Order.Orders.ListLatest(100)
	if err != nil {
		return respondErr(c, "admin.orders.list.fail", err)
	}
	return c.JSON(fiber.Map{"orders": ords})
}

// GET /api/v1/admin/products?withoutStories=true
func (h *AdminHandler) Products(c *fiber.Ctx) error {
	rows, err := h.Catalog.ListAdmin(c.QueryBool("withoutStories"))
	if err != nil {
		return respondErr(c, "admin.products.list.fail", err)
	}
	return c.JSON(fiber.Map{"products": rows})
}

type productReq struct {
	SellerID    string   `json:"sellerId"`
	Category    string   `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}

// POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	p := &domain.Product{
		SellerID:    req.SellerID,
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImagesJSON:  validate.ImagesJSON(req.Images),
	}
	if err := h.Catalog.CreateProduct(p); err != nil {
		return respondErr(c, "admin.products.create.fail", err)
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

type stockReq struct {
	Stock int `json:"stock"`
}

// PUT /api/v1/admin/products/:id/stock
func (h *AdminHandler) UpdateStock(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "missing product id")
	}
	var req stockReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Catalog.UpdateStock(pid, req.Stock); err != nil {
		return respondErr(c, "admin.stock.save.fail", err)
	}
	applog.Audit(c, "admin.stock.save", map[string]any{"product": pid, "stock": req.Stock})
	return c.JSON(fiber.Map{"ok": true})
}

type storyReq struct {
	ProductID string `json:"productId"`
	Artisan   string `json:"artisan"`
	Region    string `json:"region"`
	Process   string `json:"process"`
	Image     string `json:"image"`
}

// POST /api/v1/admin/stories — create or replace the product's story
func (h *AdminHandler) UpsertStory(c *fiber.Ctx) error {
	var req storyReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	st := &domain.Story{
		ProductID: req.ProductID,
		Artisan:   req.Artisan,
		Region:    req.Region,
		Process:   req.Process,
		Image:     req.Image,
	}
	if err := h.Catalog.UpsertStory(st); err != nil {
		return respondErr(c, "admin.stories.save.fail", err)
	}
	applog.Audit(c, "admin.stories.save", map[string]any{"product": st.ProductID})
	return c.JSON(st)
}

// GET /api/v1/admin/contact
func (h *AdminHandler) ListInquiries(c *fiber.Ctx) error {
	out, err := h.Inquiries.ListLatest(100)
	if err != nil {
		return respondErr(c, "admin.contact.list.fail", err)
	}
	return c.JSON(fiber.Map{"inquiries": out})
}

type inquiryStatusReq struct {
	Status string `json:"status"`
}

// PUT /api/v1/contact/:id/status
func (h *AdminHandler) UpdateInquiryStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "inquiry not found")
	}
	var req inquiryStatusReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	status := domain.InquiryStatus(req.Status)
	if !status.Valid() {
		return badRequest(c, "Invalid status value")
	}
	q, err := h.Inquiries.Transition(id, status)
	if err != nil {
		return respondErr(c, "admin.contact.status.fail", err)
	}
	applog.Audit(c, "admin.contact.status", map[string]any{"inquiry_id": id, "status": req.Status})
	return c.JSON(q)
}

type respondReq struct {
	Response string `json:"response"`
}

// PUT /api/v1/admin/contact/:id/respond
func (h *AdminHandler) RespondInquiry(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "inquiry not found")
	}
	var req respondReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	q, err := h.Inquiries.Respond(id, req.Response)
	if err != nil {
		return respondErr(c, "admin.contact.respond.fail", err)
	}
	applog.Audit(c, "admin.contact.respond", map[string]any{"inquiry_id": id})
	return c.JSON(q)
}
