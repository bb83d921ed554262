package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/adyen/swaglabs/internal/models"
	"github.com/adyen/swaglabs/internal/repository"
	"github.com/adyen/swaglabs/internal/services"
)

const templateDir = "../../templates"

// testShop wires the page handlers the way the server does
type testShop struct {
	mux      *http.ServeMux
	sessions *services.MemorySessionStore
	orders   *repository.MemoryOrderRepository
}

func newTestShop(t *testing.T) *testShop {
	t.Helper()

	catalog := models.DefaultCatalog()
	sessions := services.NewMemorySessionStore()
	orders := repository.NewMemoryOrderRepository()
	orderService := services.NewOrderService(orders)
	checkout := services.NewCheckoutService(sessions, orderService, catalog)

	login, err := NewLoginHandler(templateDir, sessions)
	if err != nil {
		t.Fatalf("Failed to create login handler: %v", err)
	}
	inventory, err := NewInventoryHandler(templateDir, catalog)
	if err != nil {
		t.Fatalf("Failed to create inventory handler: %v", err)
	}
	cart, err := NewCartHandler(templateDir, catalog)
	if err != nil {
		t.Fatalf("Failed to create cart handler: %v", err)
	}
	info, err := NewCheckoutInfoHandler(templateDir, checkout)
	if err != nil {
		t.Fatalf("Failed to create checkout info handler: %v", err)
	}
	overview, err := NewCheckoutOverviewHandler(templateDir, checkout)
	if err != nil {
		t.Fatalf("Failed to create checkout overview handler: %v", err)
	}
	complete, err := NewCheckoutCompleteHandler(templateDir, orderService)
	if err != nil {
		t.Fatalf("Failed to create checkout complete handler: %v", err)
	}

	protect := func(h http.Handler) http.Handler { return RequireSession(sessions, h) }

	mux := http.NewServeMux()
	mux.Handle("/", login)
	mux.Handle("/logout", NewLogoutHandler(sessions))
	mux.Handle("/inventory.html", protect(inventory))
	mux.Handle("/cart.html", protect(cart))
	mux.Handle("/cart/add", protect(NewAddToCartHandler(checkout)))
	mux.Handle("/cart/remove", protect(NewRemoveFromCartHandler(checkout)))
	mux.Handle("/checkout-step-one.html", protect(info))
	mux.Handle("/checkout-step-two.html", protect(overview))
	mux.Handle("/checkout-complete.html", protect(complete))

	return &testShop{mux: mux, sessions: sessions, orders: orders}
}

func (s *testShop) do(method, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

// signIn logs username in and returns the session cookie
func (s *testShop) signIn(t *testing.T, username string) *http.Cookie {
	t.Helper()

	w := s.do(http.MethodPost, "/", url.Values{"user-name": {username}, "password": {"secret_sauce"}}, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Login for %s returned %d: %s", username, w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("Login for %s set no session cookie", username)
	return nil
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("expected redirect to %s, got %s", location, got)
	}
}

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()

	for _, content := range want {
		if !strings.Contains(body, content) {
			t.Errorf("expected response to contain '%s', but it was not found", content)
		}
	}
}
