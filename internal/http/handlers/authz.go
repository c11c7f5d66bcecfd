package handlers

import (
	"craftroots/internal/domain"
	applog "craftroots/internal/log"
	"craftroots/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAccount enforces a logged-in session and stashes the account in
// Locals("account").
func RequireAccount(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		a, err := auth.CurrentAccount(sid)
		if err != nil || a == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		c.Locals("account", a)
		return c.Next()
	}
}

// RequireAdmin rejects anonymous and non-admin sessions alike with 401, so
// probes cannot distinguish "no session" from "wrong role".
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		a, err := auth.CurrentAccount(sid)
		if err != nil || a == nil || a.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		c.Locals("account", a)
		return c.Next()
	}
}

func currentAccount(c *fiber.Ctx) *domain.Account {
	a, _ := c.Locals("account").(*domain.Account)
	return a
}
