package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"craftroots/internal/config"
	"craftroots/internal/http/handlers"
	applog "craftroots/internal/log"
	"craftroots/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	pool := repos.NewPool(cfg.DBDSN, nil)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := pool.Acquire(ctx)
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	deps := handlers.NewDeps(db, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	requireAccount := handlers.RequireAccount(deps.Auth)
	requireAdmin := handlers.RequireAdmin(deps.Auth)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api/v1")

	// Auth (login throttled)
	api.Post("/auth/register", deps.AuthHandler.Register)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)
	api.Post("/auth/logout", deps.AuthHandler.Logout)

	// Catalog
	api.Get("/products/count", deps.ProductHandler.Count)
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/products/:id/reviews", deps.ReviewHandler.ListByProduct)
	api.Post("/products/:id/ratings", requireAccount, deps.ProductHandler.Rate)
	api.Get("/stories/:productId", deps.StoryHandler.ByProduct)

	// Reviews
	api.Post("/reviews", requireAccount, deps.ReviewHandler.Submit)
	api.Post("/reviews/:id/helpful", requireAccount, deps.ReviewHandler.VoteHelpful)

	// Cart & orders
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", deps.CartHandler.Add)
	api.Post("/orders", requireAccount, deps.OrderHandler.Place)
	api.Get("/orders", requireAccount, deps.OrderHandler.History)
	api.Get("/orders/:id", requireAccount, deps.OrderHandler.View)

	// Wishlist
	api.Get("/wishlist", requireAccount, deps.WishlistHandler.List)
	api.Post("/wishlist", requireAccount, deps.WishlistHandler.Save)
	api.Delete("/wishlist/:productId", requireAccount, deps.WishlistHandler.Unsave)

	// Contact — /contact/user before /contact/:id so "user" never binds as an id
	contactLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.contact.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Post("/contact", contactLimiter, deps.ContactHandler.Submit)
	api.Get("/contact/user/unread", requireAccount, deps.ContactHandler.UnreadCount)
	api.Get("/contact/user", requireAccount, deps.ContactHandler.ForUser)
	api.Get("/contact/:id", deps.ContactHandler.Get)
	api.Post("/contact/:id/viewed", requireAccount, deps.ContactHandler.MarkViewed)
	api.Put("/contact/:id/status", requireAdmin, deps.AdminHandler.UpdateInquiryStatus)

	// Back office
	admin := api.Group("/admin", requireAdmin)
	admin.Put("/orders/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/orders", deps.AdminHandler.Orders)
	admin.Get("/products", deps.AdminHandler.Products)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Put("/products/:id/stock", deps.AdminHandler.UpdateStock)
	admin.Post("/stories", deps.AdminHandler.UpsertStory)
	admin.Get("/contact", deps.AdminHandler.ListInquiries)
	admin.Put("/contact/:id/respond", deps.AdminHandler.RespondInquiry)

	// ---------- Serve ----------
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("[shutdown] draining connections")
	_ = app.ShutdownWithTimeout(10 * time.Second)
}
