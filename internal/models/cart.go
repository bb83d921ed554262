package models

import "errors"

// Cart errors
var (
	ErrAlreadyInCart = errors.New("item is already in the cart")
	ErrNotInCart     = errors.New("item is not in the cart")
)

// Cart holds item ids in the order they were added. Each item appears at
// most once, as on the Swag Labs site.
type Cart struct {
	ids []int
}

// Add puts an item in the cart
func (c *Cart) Add(id int) error {
	if c.Contains(id) {
		return ErrAlreadyInCart
	}
	c.ids = append(c.ids, id)
	return nil
}

// Remove takes an item out of the cart
func (c *Cart) Remove(id int) error {
	for i, existing := range c.ids {
		if existing == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			return nil
		}
	}
	return ErrNotInCart
}

// Contains reports whether an item is in the cart
func (c *Cart) Contains(id int) bool {
	for _, existing := range c.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Count returns the number of items, the value shown on the cart badge
func (c *Cart) Count() int {
	return len(c.ids)
}

// IDs returns the item ids in insertion order
func (c *Cart) IDs() []int {
	return append([]int(nil), c.ids...)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.ids = nil
}

// Clone returns an independent copy
func (c *Cart) Clone() *Cart {
	return &Cart{ids: c.IDs()}
}

// Items resolves the cart against a catalog, skipping unknown ids
func (c *Cart) Items(catalog *Catalog) []Item {
	items := make([]Item, 0, len(c.ids))
	for _, id := range c.ids {
		if item, ok := catalog.ByID(id); ok {
			items = append(items, item)
		}
	}
	return items
}
