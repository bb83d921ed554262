package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/adyen/swaglabs/internal/models"
)

// Checkout errors
var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrShopperMissing      = errors.New("checkout information has not been submitted")
	ErrCheckoutUnavailable = errors.New("checkout cannot be completed for this account")
)

// ShopperError is a rejected step one submission. Shopper is what was
// validated, after any account quirks were applied.
type ShopperError struct {
	Shopper models.Shopper
	Err     error
}

func (e *ShopperError) Error() string {
	return e.Err.Error()
}

func (e *ShopperError) Unwrap() error {
	return e.Err
}

// CheckoutService drives the cart through the two checkout steps
type CheckoutService interface {
	AddToCart(sessionID string, itemID int) (*Session, error)
	RemoveFromCart(sessionID string, itemID int) (*Session, error)
	SubmitShopper(sessionID string, shopper models.Shopper) (*Session, error)
	Overview(sessionID string) (*Overview, error)
	Finish(sessionID string) (*models.Order, error)
}

// Overview is what checkout step two shows
type Overview struct {
	Items   []models.Item
	Shopper models.Shopper
	Summary models.Summary
}

// CheckoutServiceImpl implements CheckoutService
type CheckoutServiceImpl struct {
	sessions     SessionStore
	orderService OrderService
	catalog      *models.Catalog
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(sessions SessionStore, orderService OrderService, catalog *models.Catalog) CheckoutService {
	return &CheckoutServiceImpl{
		sessions:     sessions,
		orderService: orderService,
		catalog:      catalog,
	}
}

// AddToCart puts a catalog item in the session's cart
func (s *CheckoutServiceImpl) AddToCart(sessionID string, itemID int) (*Session, error) {
	if _, ok := s.catalog.ByID(itemID); !ok {
		return nil, fmt.Errorf("unknown item %d", itemID)
	}
	return s.sessions.Modify(sessionID, func(session *Session) error {
		return session.Cart.Add(itemID)
	})
}

// RemoveFromCart takes an item out of the session's cart
func (s *CheckoutServiceImpl) RemoveFromCart(sessionID string, itemID int) (*Session, error) {
	return s.sessions.Modify(sessionID, func(session *Session) error {
		return session.Cart.Remove(itemID)
	})
}

// SubmitShopper validates and stores the step one information. Faulty
// accounts lose the last name, as the site's broken form does.
func (s *CheckoutServiceImpl) SubmitShopper(sessionID string, shopper models.Shopper) (*Session, error) {
	return s.sessions.Modify(sessionID, func(session *Session) error {
		if session.Faulty {
			shopper.LastName = ""
		}
		if err := shopper.Validate(); err != nil {
			return &ShopperError{Shopper: shopper, Err: err}
		}
		session.Shopper = shopper
		return nil
	})
}

// Overview prices the session's cart
func (s *CheckoutServiceImpl) Overview(sessionID string) (*Overview, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	items := session.Cart.Items(s.catalog)
	return &Overview{
		Items:   items,
		Shopper: session.Shopper,
		Summary: models.Summarize(items),
	}, nil
}

// Finish places the order and empties the cart
func (s *CheckoutServiceImpl) Finish(sessionID string) (*models.Order, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Faulty {
		return nil, ErrCheckoutUnavailable
	}
	if session.Cart.Count() == 0 {
		return nil, ErrEmptyCart
	}
	if session.Shopper.Validate() != nil {
		return nil, ErrShopperMissing
	}

	order, err := s.orderService.PlaceOrder(session.Username, session.Shopper, session.Cart.Items(s.catalog))
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	log.Printf("Placed order %s for %s: %d items, total %s",
		order.Reference, order.Username, order.ItemCount(), order.GetFormattedTotal())

	_, err = s.sessions.Modify(sessionID, func(session *Session) error {
		session.Cart.Clear()
		session.Shopper = models.Shopper{}
		session.LastOrderRef = order.Reference
		return nil
	})
	if err != nil {
		log.Printf("Warning: failed to reset session after order %s: %v", order.Reference, err)
	}

	return order, nil
}
