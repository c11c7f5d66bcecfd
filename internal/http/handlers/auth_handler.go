package handlers

import (
	"errors"
	"time"

	"craftroots/internal/domain"
	"craftroots/internal/log"
	"craftroots/internal/repos"
	"craftroots/internal/services"
	"craftroots/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind TLS
		})
	}
	return sid
}

type registerReq struct {
	Email    string         `json:"email"`
	Name     string         `json:"name"`
	Password string         `json:"password"`
	Address  domain.Address `json:"address"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if _, ok := validate.Email(req.Email); !ok {
		return badRequest(c, "invalid email")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "invalid name")
	}
	if !validate.Password(req.Password) {
		return badRequest(c, "password must be 8-20 chars with upper, lower, digit and symbol")
	}
	a, err := h.Auth.Register(req.Email, name, req.Password, req.Address)
	if err != nil {
		if errors.Is(err, repos.ErrDuplicate) {
			log.Security(c, "auth.register.duplicate", map[string]any{"email": req.Email})
		}
		return respondErr(c, "auth.register.fail", err)
	}
	log.Audit(c, "auth.register", map[string]any{"account_id": a.ID})
	return c.Status(fiber.StatusCreated).JSON(a)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if _, ok := validate.Email(req.Email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	a, err := h.Auth.Login(sid, req.Email, req.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": a.Email})
	return c.JSON(a)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.JSON(fiber.Map{"ok": true})
}
