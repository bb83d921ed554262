package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestInventoryHandler_ServeHTTP(t *testing.T) {
	shop := newTestShop(t)
	cookie := shop.signIn(t, "standard_user")

	w := shop.do(http.MethodGet, "/inventory.html", nil, cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := w.Body.String()
	assertContains(t, body,
		`<div class="inventory_item_name" data-test="inventory-item-name">Sauce Labs Backpack</div>`,
		`<div class="inventory_item_price" data-test="inventory-item-price">$29.99</div>`,
		`id="add-to-cart-sauce-labs-backpack"`,
		`id="shopping_cart_container"`,
	)
	if got := strings.Count(body, `class="inventory_item_description"`); got != 6 {
		t.Errorf("expected 6 inventory entries, got %d", got)
	}
	if got := strings.Count(body, ">Add to cart</button>"); got != 6 {
		t.Errorf("expected 6 add buttons, got %d", got)
	}
	if strings.Contains(body, "shopping_cart_badge") {
		t.Error("badge must be absent while the cart is empty")
	}
}

func TestCartActionHandler(t *testing.T) {
	shop := newTestShop(t)
	cookie := shop.signIn(t, "standard_user")

	// WHEN the backpack is added
	w := shop.do(http.MethodPost, "/cart/add", url.Values{"id": {"4"}}, cookie)
	assertRedirect(t, w, "/inventory.html")

	// THEN the badge shows 1 and the button flips to Remove
	body := shop.do(http.MethodGet, "/inventory.html", nil, cookie).Body.String()
	assertContains(t, body,
		`<span class="shopping_cart_badge" data-test="shopping-cart-badge">1</span>`,
		`id="remove-sauce-labs-backpack"`,
	)
	if got := strings.Count(body, ">Add to cart</button>"); got != 5 {
		t.Errorf("expected 5 add buttons, got %d", got)
	}

	// AND adding it again is a no-op
	w = shop.do(http.MethodPost, "/cart/add", url.Values{"id": {"4"}}, cookie)
	assertRedirect(t, w, "/inventory.html")

	// WHEN it is removed from the cart page
	w = shop.do(http.MethodPost, "/cart/remove", url.Values{"id": {"4"}, "return": {"/cart.html"}}, cookie)
	assertRedirect(t, w, "/cart.html")

	session, _ := shop.sessions.Get(cookie.Value)
	if session.Cart.Count() != 0 {
		t.Errorf("expected empty cart, got %v", session.Cart.IDs())
	}
}

func TestCartActionHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		form           url.Values
		expectedStatus int
	}{
		{name: "GET not allowed", method: http.MethodGet, expectedStatus: http.StatusMethodNotAllowed},
		{name: "non numeric id", method: http.MethodPost, form: url.Values{"id": {"backpack"}}, expectedStatus: http.StatusBadRequest},
		{name: "unknown item", method: http.MethodPost, form: url.Values{"id": {"42"}}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop := newTestShop(t)
			cookie := shop.signIn(t, "standard_user")

			w := shop.do(tt.method, "/cart/add", tt.form, cookie)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestCartHandler_ServeHTTP(t *testing.T) {
	shop := newTestShop(t)
	cookie := shop.signIn(t, "standard_user")
	shop.do(http.MethodPost, "/cart/add", url.Values{"id": {"0"}}, cookie)

	w := shop.do(http.MethodGet, "/cart.html", nil, cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	body := w.Body.String()
	assertContains(t, body,
		`<div class="cart_item" data-test="inventory-item">`,
		`<div class="inventory_item_name" data-test="inventory-item-name">Sauce Labs Bike Light</div>`,
		`<div class="inventory_item_price" data-test="inventory-item-price">$9.99</div>`,
		`id="checkout"`,
		`id="continue-shopping"`,
	)
	if got := strings.Count(body, `<div class="cart_item" data-test`); got != 1 {
		t.Errorf("expected 1 cart row, got %d", got)
	}
}
