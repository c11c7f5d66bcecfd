package handlers

import (
	"craftroots/internal/domain"
	applog "craftroots/internal/log"
	"craftroots/internal/services"
	"craftroots/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	Inquiries *services.InquiryService
}

type contactReq struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// POST /api/v1/contact
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req contactReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if _, ok := validate.Email(req.Email); !ok {
		return badRequest(c, "invalid email")
	}
	q, err := h.Inquiries.Submit(req.Email, req.Name, domain.InquiryType(req.Type), req.Message)
	if err != nil {
		return respondErr(c, "contact.submit.fail", err)
	}
	applog.Audit(c, "contact.submit", map[string]any{"inquiry_id": q.ID})
	return c.Status(fiber.StatusCreated).JSON(q)
}

// GET /api/v1/contact/:id
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "inquiry not found")
	}
	q, err := h.Inquiries.Get(id)
	if err != nil {
		return respondErr(c, "contact.get.fail", err)
	}
	return c.JSON(q)
}

// GET /api/v1/contact/user — inquiries for the session's email, newest first
func (h *ContactHandler) ForUser(c *fiber.Ctx) error {
	a := currentAccount(c)
	out, err := h.Inquiries.ListForEmail(a.Email)
	if err != nil {
		return respondErr(c, "contact.user.fail", err)
	}
	return c.JSON(fiber.Map{"inquiries": out})
}

// GET /api/v1/contact/user/unread — responded-but-unviewed count
func (h *ContactHandler) UnreadCount(c *fiber.Ctx) error {
	a := currentAccount(c)
	n, err := h.Inquiries.UnreadCount(a.Email)
	if err != nil {
		return respondErr(c, "contact.unread.fail", err)
	}
	return c.JSON(fiber.Map{"count": n})
}

// POST /api/v1/contact/:id/viewed — submitter marks the response read
func (h *ContactHandler) MarkViewed(c *fiber.Ctx) error {
	a := currentAccount(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "inquiry not found")
	}
	if err := h.Inquiries.MarkViewed(id, a.Email); err != nil {
		return respondErr(c, "contact.viewed.fail", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
