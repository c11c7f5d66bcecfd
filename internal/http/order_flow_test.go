package handlers_test

import (
	"net/http"
	"testing"
)

// Full checkout: cart -> order -> stock decrement -> status walk.
func TestCheckoutFlow(t *testing.T) {
	app, _, db := newApp(t)
	bindSession(t, db, "sid-asha", "u-asha")

	// two jugs into the cart
	resp := doJSON(t, app, "POST", "/api/v1/cart", "sid-asha",
		map[string]any{"productId": "cer-001", "qty": 2}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cart add: expected 200, got %d", resp.StatusCode)
	}

	var placed struct {
		Order struct {
			ID     string  `json:"id"`
			Status string  `json:"status"`
			Total  float64 `json:"total"`
		} `json:"order"`
	}
	resp = doJSON(t, app, "POST", "/api/v1/orders", "sid-asha", nil, &placed)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("place: expected 201, got %d", resp.StatusCode)
	}
	if placed.Order.Status != "pending" {
		t.Fatalf("new order should be pending, got %s", placed.Order.Status)
	}
	if placed.Order.Total != 69.0 {
		t.Fatalf("expected total 69.0, got %v", placed.Order.Total)
	}

	var stock int
	if err := db.Get(&stock, `SELECT stock FROM products WHERE id='cer-001'`); err != nil {
		t.Fatal(err)
	}
	if stock != 10 {
		t.Fatalf("expected stock 10 after checkout, got %d", stock)
	}

	// cart is cleared
	var cart struct {
		Items []any `json:"items"`
	}
	doJSON(t, app, "GET", "/api/v1/cart", "sid-asha", nil, &cart)
	if len(cart.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d items", len(cart.Items))
	}

	// admin walks the order along the edges
	bindSession(t, db, "sid-admin", "u-admin")
	for _, next := range []string{"processing", "shipped", "delivered"} {
		resp = doJSON(t, app, "PUT", "/api/v1/admin/orders/status", "sid-admin",
			map[string]any{"orderId": placed.Order.ID, "status": next}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("transition to %s: expected 200, got %d", next, resp.StatusCode)
		}
	}

	// delivered -> processing is off the edge set
	resp = doJSON(t, app, "PUT", "/api/v1/admin/orders/status", "sid-admin",
		map[string]any{"orderId": placed.Order.ID, "status": "processing"}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("backwards transition: expected 409, got %d", resp.StatusCode)
	}

	// unknown status never reaches the transition check
	resp = doJSON(t, app, "PUT", "/api/v1/admin/orders/status", "sid-admin",
		map[string]any{"orderId": placed.Order.ID, "status": "archived"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown status: expected 400, got %d", resp.StatusCode)
	}
}

func TestCheckoutRejectsEmptyCartAndOverdraw(t *testing.T) {
	app, _, db := newApp(t)
	bindSession(t, db, "sid-ravi", "u-ravi")

	resp := doJSON(t, app, "POST", "/api/v1/orders", "sid-ravi", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty cart: expected 400, got %d", resp.StatusCode)
	}

	// cer-002 has 6 in stock; ask for more
	doJSON(t, app, "POST", "/api/v1/cart", "sid-ravi", map[string]any{"productId": "cer-002", "qty": 7}, nil)
	resp = doJSON(t, app, "POST", "/api/v1/orders", "sid-ravi", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("overdraw: expected 400, got %d", resp.StatusCode)
	}

	var stock int
	if err := db.Get(&stock, `SELECT stock FROM products WHERE id='cer-002'`); err != nil {
		t.Fatal(err)
	}
	if stock != 6 {
		t.Fatalf("failed checkout must not touch stock, got %d", stock)
	}
}

func TestOrderVisibility(t *testing.T) {
	app, _, db := newApp(t)
	bindSession(t, db, "sid-asha", "u-asha")
	bindSession(t, db, "sid-ravi", "u-ravi")
	bindSession(t, db, "sid-admin", "u-admin")

	doJSON(t, app, "POST", "/api/v1/cart", "sid-asha", map[string]any{"productId": "tex-001", "qty": 1}, nil)
	var placed struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	doJSON(t, app, "POST", "/api/v1/orders", "sid-asha", nil, &placed)

	// owner sees it
	resp := doJSON(t, app, "GET", "/api/v1/orders/"+placed.Order.ID, "sid-asha", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner: expected 200, got %d", resp.StatusCode)
	}
	// another shopper gets a 404, not a 403, so ids cannot be probed
	resp = doJSON(t, app, "GET", "/api/v1/orders/"+placed.Order.ID, "sid-ravi", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("stranger: expected 404, got %d", resp.StatusCode)
	}
	// admin sees everything
	resp = doJSON(t, app, "GET", "/api/v1/orders/"+placed.Order.ID, "sid-admin", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", resp.StatusCode)
	}
}
