package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// TaxRatePercent is the flat sales tax applied at checkout
const TaxRatePercent = 8

// OrderLine is one purchased item, priced at the time of the order
type OrderLine struct {
	ItemID     int
	Name       string
	PriceCents int64
}

// Order represents a placed Swag Labs order
type Order struct {
	ID        string
	Reference string
	Username  string
	Shopper   Shopper
	Lines     []OrderLine
	Subtotal  int64
	Tax       int64
	Total     int64
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain errors
var (
	ErrEmptyOrder              = errors.New("order must contain at least one item")
	ErrInvalidUsername         = errors.New("order username cannot be empty")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// Summary holds the amounts shown on checkout step two
type Summary struct {
	Subtotal int64
	Tax      int64
	Total    int64
}

// Summarize prices a list of items
func Summarize(items []Item) Summary {
	var subtotal int64
	for _, item := range items {
		subtotal += item.PriceCents
	}
	tax := Tax(subtotal)
	return Summary{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// Tax returns the sales tax on subtotal, rounded half up to the cent
func Tax(subtotal int64) int64 {
	return (subtotal*TaxRatePercent + 50) / 100
}

// NewOrder creates a pending order for items with validation
func NewOrder(username string, shopper Shopper, items []Item) (*Order, error) {
	if err := validateOrderInput(username, shopper, items); err != nil {
		return nil, err
	}

	lines := make([]OrderLine, len(items))
	for i, item := range items {
		lines[i] = OrderLine{ItemID: item.ID, Name: item.Name, PriceCents: item.PriceCents}
	}
	summary := Summarize(items)

	id := uuid.New()
	now := time.Now()

	return &Order{
		ID:        id.String(),
		Reference: "SWAG-" + strings.ToUpper(id.String()[:8]),
		Username:  username,
		Shopper:   shopper,
		Lines:     lines,
		Subtotal:  summary.Subtotal,
		Tax:       summary.Tax,
		Total:     summary.Total,
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// validateOrderInput validates order creation parameters
func validateOrderInput(username string, shopper Shopper, items []Item) error {
	if username == "" {
		return ErrInvalidUsername
	}
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	return shopper.Validate()
}

// Complete marks the order as completed
func (o *Order) Complete() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot complete order with status %s", ErrInvalidStatusTransition, o.Status)
	}

	o.Status = OrderStatusCompleted
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel marks the order as cancelled
func (o *Order) Cancel() error {
	if o.Status == OrderStatusCompleted {
		return fmt.Errorf("%w: cannot cancel a completed order", ErrInvalidStatusTransition)
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// IsPending returns true if the order is in pending status
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsCompleted returns true if the order was placed successfully
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// ItemCount returns the number of purchased items
func (o *Order) ItemCount() int {
	return len(o.Lines)
}

// GetFormattedTotal returns the total as displayed on the site
func (o *Order) GetFormattedTotal() string {
	return FormatCents(o.Total)
}
