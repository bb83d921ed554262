package models

import (
	"fmt"
	"sort"
	"strings"
)

// Item is a product in the shop catalog
type Item struct {
	ID          int
	Name        string
	Description string
	PriceCents  int64
}

// Price returns the price as displayed on the site, e.g. "$29.99"
func (i Item) Price() string {
	return FormatCents(i.PriceCents)
}

// Slug returns the id fragment the site uses for the item's buttons,
// e.g. "sauce-labs-backpack"
func (i Item) Slug() string {
	return strings.ToLower(strings.ReplaceAll(i.Name, " ", "-"))
}

// FormatCents renders an amount in cents as dollars
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// Catalog is the fixed set of items the shop sells
type Catalog struct {
	items []Item
	byID  map[int]Item
}

// NewCatalog builds a catalog listing items sorted by name
func NewCatalog(items []Item) *Catalog {
	sorted := append([]Item(nil), items...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Name < sorted[b].Name
	})

	byID := make(map[int]Item, len(sorted))
	for _, item := range sorted {
		byID[item.ID] = item
	}

	return &Catalog{items: sorted, byID: byID}
}

// Items returns the listing in display order
func (c *Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}

// ByID looks an item up
func (c *Catalog) ByID(id int) (Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// DefaultCatalog returns the six Swag Labs products
func DefaultCatalog() *Catalog {
	return NewCatalog([]Item{
		{
			ID:          4,
			Name:        "Sauce Labs Backpack",
			Description: "carry.allTheThings() with the sleek, streamlined Sly Pack that melds uncompromising style with unequaled laptop and tablet protection.",
			PriceCents:  2999,
		},
		{
			ID:          0,
			Name:        "Sauce Labs Bike Light",
			Description: "A red light isn't the desired state in testing but it sure helps when riding your bike at night. Water-resistant with 3 lighting modes, 1 AAA battery included.",
			PriceCents:  999,
		},
		{
			ID:          1,
			Name:        "Sauce Labs Bolt T-Shirt",
			Description: "Get your testing superhero on with the Sauce Labs bolt T-shirt. From American Apparel, 100% ringspun combed cotton, heather gray with red bolt.",
			PriceCents:  1599,
		},
		{
			ID:          5,
			Name:        "Sauce Labs Fleece Jacket",
			Description: "It's not every day that you come across a midweight quarter-zip fleece jacket capable of handling everything from a relaxing day outdoors to a busy day at the office.",
			PriceCents:  4999,
		},
		{
			ID:          2,
			Name:        "Sauce Labs Onesie",
			Description: "Rib snap infant onesie for the junior automation engineer in development. Reinforced 3-snap bottom closure, two-needle hemmed sleeved and bottom won't unravel.",
			PriceCents:  799,
		},
		{
			ID:          3,
			Name:        "Test.allTheThings() T-Shirt (Red)",
			Description: "This classic Sauce Labs t-shirt is perfect to wear when cooking up a batch of homemade Sauce Labs tests. Superior materials and craftsmanship make this one look good.",
			PriceCents:  1599,
		},
	})
}
