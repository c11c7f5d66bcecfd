package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"craftroots/internal/config"
	"craftroots/internal/http/handlers"
	"craftroots/internal/repos"
)

// newApp builds the full JSON API against a fresh in-memory database with
// the demo seed. Rate limiting is left off so tests can hammer routes.
func newApp(t *testing.T) (*fiber.App, *handlers.Deps, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	deps := handlers.NewDeps(db, config.Config{DBDSN: ":memory:"})

	app := fiber.New()
	app.Use(requestid.New())

	requireAccount := handlers.RequireAccount(deps.Auth)
	requireAdmin := handlers.RequireAdmin(deps.Auth)

	api := app.Group("/api/v1")

	api.Post("/auth/register", deps.AuthHandler.Register)
	api.Post("/auth/login", deps.AuthHandler.Login)
	api.Post("/auth/logout", deps.AuthHandler.Logout)

	api.Get("/products/count", deps.ProductHandler.Count)
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/products/:id/reviews", deps.ReviewHandler.ListByProduct)
	api.Post("/products/:id/ratings", requireAccount, deps.ProductHandler.Rate)
	api.Get("/stories/:productId", deps.StoryHandler.ByProduct)

	api.Post("/reviews", requireAccount, deps.ReviewHandler.Submit)
	api.Post("/reviews/:id/helpful", requireAccount, deps.ReviewHandler.VoteHelpful)

	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", deps.CartHandler.Add)
	api.Post("/orders", requireAccount, deps.OrderHandler.Place)
	api.Get("/orders", requireAccount, deps.OrderHandler.History)
	api.Get("/orders/:id", requireAccount, deps.OrderHandler.View)

	api.Get("/wishlist", requireAccount, deps.WishlistHandler.List)
	api.Post("/wishlist", requireAccount, deps.WishlistHandler.Save)
	api.Delete("/wishlist/:productId", requireAccount, deps.WishlistHandler.Unsave)

	api.Post("/contact", deps.ContactHandler.Submit)
	api.Get("/contact/user/unread", requireAccount, deps.ContactHandler.UnreadCount)
	api.Get("/contact/user", requireAccount, deps.ContactHandler.ForUser)
	api.Get("/contact/:id", deps.ContactHandler.Get)
	api.Post("/contact/:id/viewed", requireAccount, deps.ContactHandler.MarkViewed)
	api.Put("/contact/:id/status", requireAdmin, deps.AdminHandler.UpdateInquiryStatus)

	admin := api.Group("/admin", requireAdmin)
	admin.Put("/orders/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/orders", deps.AdminHandler.Orders)
	admin.Get("/products", deps.AdminHandler.Products)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Put("/products/:id/stock", deps.AdminHandler.UpdateStock)
	admin.Post("/stories", deps.AdminHandler.UpsertStory)
	admin.Get("/contact", deps.AdminHandler.ListInquiries)
	admin.Put("/contact/:id/respond", deps.AdminHandler.RespondInquiry)

	return app, deps, db
}

// bindSession attaches a seeded account to a session id, skipping the login
// round trip.
func bindSession(t *testing.T, db *sqlx.DB, sid, accountID string) {
	t.Helper()
	if err := repos.NewAccountRepo(db).BindSession(sid, accountID); err != nil {
		t.Fatalf("bind session: %v", err)
	}
}

// doJSON performs a request with an optional JSON body and session cookie,
// decoding the JSON response into out when non-nil.
func doJSON(t *testing.T, app *fiber.App, method, target, sid string, body, out any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, target, err)
		}
	}
	return resp
}
