package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/adyen/swaglabs/internal/models"
	"github.com/adyen/swaglabs/internal/services"
)

// InventoryHandler lists the catalog
type InventoryHandler struct {
	template *template.Template
	catalog  *models.Catalog
}

// InventoryItem is a catalog item plus whether the shopper has it
type InventoryItem struct {
	models.Item
	InCart bool
}

// InventoryData represents the data passed to the inventory template
type InventoryData struct {
	Page
	Items []InventoryItem
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(templateDir string, catalog *models.Catalog) (*InventoryHandler, error) {
	tmpl, err := parsePage(templateDir, "inventory.html")
	if err != nil {
		return nil, err
	}

	return &InventoryHandler{
		template: tmpl,
		catalog:  catalog,
	}, nil
}

// ServeHTTP renders the product listing
func (h *InventoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	session, ok := mustSession(w, r)
	if !ok {
		return
	}

	catalogItems := h.catalog.Items()
	items := make([]InventoryItem, len(catalogItems))
	for i, item := range catalogItems {
		items[i] = InventoryItem{Item: item, InCart: session.Cart.Contains(item.ID)}
	}

	render(w, h.template, http.StatusOK, InventoryData{
		Page:  Page{Heading: "Products", CartCount: session.Cart.Count()},
		Items: items,
	})
}

// CartActionHandler adds or removes one item and returns to the listing
type CartActionHandler struct {
	checkout services.CheckoutService
	remove   bool
}

// NewAddToCartHandler creates the handler behind the "Add to cart" buttons
func NewAddToCartHandler(checkout services.CheckoutService) *CartActionHandler {
	return &CartActionHandler{checkout: checkout}
}

// NewRemoveFromCartHandler creates the handler behind the "Remove" buttons
func NewRemoveFromCartHandler(checkout services.CheckoutService) *CartActionHandler {
	return &CartActionHandler{checkout: checkout, remove: true}
}

// ServeHTTP applies the cart change
func (h *CartActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	session, ok := mustSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	itemID, err := strconv.Atoi(r.PostFormValue("id"))
	if err != nil {
		http.Error(w, "Invalid item id", http.StatusBadRequest)
		return
	}

	if h.remove {
		_, err = h.checkout.RemoveFromCart(session.ID, itemID)
	} else {
		_, err = h.checkout.AddToCart(session.ID, itemID)
	}

	// A repeated click is a no-op, as on the site.
	if err != nil && !errors.Is(err, models.ErrAlreadyInCart) && !errors.Is(err, models.ErrNotInCart) {
		log.Printf("Error updating cart for %s: %v", session.Username, err)
		http.Error(w, "Failed to update cart", http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}

// redirectTarget sends the shopper back to the page the form was on
func redirectTarget(r *http.Request) string {
	switch r.PostFormValue("return") {
	case "/cart.html":
		return "/cart.html"
	default:
		return "/inventory.html"
	}
}
