package services

import (
	"errors"
	"testing"

	"github.com/adyen/swaglabs/internal/models"
)

// MockOrderService is a mock implementation of OrderService for testing
type MockOrderService struct {
	PlaceOrderFunc func(string, models.Shopper, []models.Item) (*models.Order, error)
}

func (m *MockOrderService) PlaceOrder(username string, shopper models.Shopper, items []models.Item) (*models.Order, error) {
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(username, shopper, items)
	}
	order, err := models.NewOrder(username, shopper, items)
	if err != nil {
		return nil, err
	}
	return order, order.Complete()
}

func (m *MockOrderService) GetOrderByReference(reference string) (*models.Order, error) {
	return nil, errors.New("not implemented")
}

func (m *MockOrderService) CancelOrder(reference string) error {
	return errors.New("not implemented")
}

func newCheckout(t *testing.T, account models.Account, orders OrderService) (CheckoutService, SessionStore, string) {
	t.Helper()

	store := NewMemorySessionStore()
	session, err := store.Create(account)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return NewCheckoutService(store, orders, models.DefaultCatalog()), store, session.ID
}

func TestCheckoutService_CartOperations(t *testing.T) {
	checkout, _, id := newCheckout(t, models.Account{Username: "standard_user"}, &MockOrderService{})

	session, err := checkout.AddToCart(id, 4)
	if err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if session.Cart.Count() != 1 {
		t.Errorf("Expected 1 item, got %d", session.Cart.Count())
	}

	if _, err := checkout.AddToCart(id, 4); !errors.Is(err, models.ErrAlreadyInCart) {
		t.Errorf("Expected ErrAlreadyInCart, got %v", err)
	}
	if _, err := checkout.AddToCart(id, 42); err == nil {
		t.Error("Expected unknown item to be rejected")
	}

	session, err = checkout.RemoveFromCart(id, 4)
	if err != nil {
		t.Fatalf("RemoveFromCart() error = %v", err)
	}
	if session.Cart.Count() != 0 {
		t.Errorf("Expected empty cart, got %d", session.Cart.Count())
	}
}

func TestCheckoutService_SubmitShopper(t *testing.T) {
	tests := []struct {
		name    string
		account models.Account
		shopper models.Shopper
		wantErr error
	}{
		{
			name:    "standard user",
			account: models.Account{Username: "standard_user"},
			shopper: testShopper,
		},
		{
			name:    "missing postal code",
			account: models.Account{Username: "standard_user"},
			shopper: models.Shopper{FirstName: "A", LastName: "B"},
			wantErr: models.ErrPostalCodeRequired,
		},
		{
			name:    "faulty account loses last name",
			account: models.Account{Username: "error_user", Faulty: true},
			shopper: testShopper,
			wantErr: models.ErrLastNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkout, _, id := newCheckout(t, tt.account, &MockOrderService{})

			session, err := checkout.SubmitShopper(id, tt.shopper)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SubmitShopper() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && session.Shopper != tt.shopper {
				t.Errorf("Expected shopper %+v, got %+v", tt.shopper, session.Shopper)
			}
		})
	}
}

func TestCheckoutService_SubmitShopper_ReportsValidatedShopper(t *testing.T) {
	// GIVEN an error_user session
	checkout, _, id := newCheckout(t, models.Account{Username: "error_user", Faulty: true}, &MockOrderService{})

	// WHEN a complete form is submitted
	_, err := checkout.SubmitShopper(id, testShopper)

	// THEN the rejection carries the shopper without its last name
	var rejected *ShopperError
	if !errors.As(err, &rejected) {
		t.Fatalf("Expected a ShopperError, got %v", err)
	}
	if rejected.Shopper.LastName != "" {
		t.Errorf("Expected last name to be dropped, got %q", rejected.Shopper.LastName)
	}
	if rejected.Shopper.FirstName != testShopper.FirstName || rejected.Shopper.PostalCode != testShopper.PostalCode {
		t.Errorf("Expected other fields to be kept, got %+v", rejected.Shopper)
	}
	if err.Error() != models.ErrLastNameRequired.Error() {
		t.Errorf("Expected message %q, got %q", models.ErrLastNameRequired.Error(), err.Error())
	}
}

func TestCheckoutService_Overview(t *testing.T) {
	checkout, _, id := newCheckout(t, models.Account{Username: "standard_user"}, &MockOrderService{})
	_, _ = checkout.AddToCart(id, 4)
	_, _ = checkout.AddToCart(id, 0)

	overview, err := checkout.Overview(id)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	if len(overview.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(overview.Items))
	}
	want := models.Summary{Subtotal: 3998, Tax: 320, Total: 4318}
	if overview.Summary != want {
		t.Errorf("Expected %+v, got %+v", want, overview.Summary)
	}
}

func TestCheckoutService_Finish(t *testing.T) {
	tests := []struct {
		name       string
		account    models.Account
		addItem    bool
		submit     bool
		placeErr   error
		wantErr    error
		wantAnyErr bool
	}{
		{
			name:    "completes order",
			account: models.Account{Username: "standard_user"},
			addItem: true,
			submit:  true,
		},
		{
			name:    "empty cart",
			account: models.Account{Username: "standard_user"},
			submit:  true,
			wantErr: ErrEmptyCart,
		},
		{
			name:    "shopper not submitted",
			account: models.Account{Username: "standard_user"},
			addItem: true,
			wantErr: ErrShopperMissing,
		},
		{
			name:    "faulty account",
			account: models.Account{Username: "error_user", Faulty: true},
			addItem: true,
			wantErr: ErrCheckoutUnavailable,
		},
		{
			name:       "order service error",
			account:    models.Account{Username: "standard_user"},
			addItem:    true,
			submit:     true,
			placeErr:   errors.New("database error"),
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &MockOrderService{}
			if tt.placeErr != nil {
				orders.PlaceOrderFunc = func(string, models.Shopper, []models.Item) (*models.Order, error) {
					return nil, tt.placeErr
				}
			}
			checkout, store, id := newCheckout(t, tt.account, orders)

			if tt.addItem {
				if _, err := checkout.AddToCart(id, 4); err != nil {
					t.Fatalf("AddToCart() error = %v", err)
				}
			}
			if tt.submit {
				if _, err := checkout.SubmitShopper(id, testShopper); err != nil {
					t.Fatalf("SubmitShopper() error = %v", err)
				}
			}

			order, err := checkout.Finish(id)

			if tt.wantErr != nil || tt.wantAnyErr {
				if err == nil {
					t.Fatal("Expected Finish() to fail")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("Finish() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Finish() error = %v", err)
			}

			if !order.IsCompleted() {
				t.Errorf("Expected completed order, got %s", order.Status)
			}

			// GIVEN a finished checkout THEN the cart is empty and the order is remembered
			session, _ := store.Get(id)
			if session.Cart.Count() != 0 {
				t.Errorf("Expected empty cart after finish, got %d", session.Cart.Count())
			}
			if session.LastOrderRef != order.Reference {
				t.Errorf("Expected last order %s, got %s", order.Reference, session.LastOrderRef)
			}
		})
	}
}
