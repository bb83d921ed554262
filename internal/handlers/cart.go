package handlers

import (
	"html/template"
	"net/http"

	"github.com/adyen/swaglabs/internal/models"
)

// CartHandler shows the items in the cart
type CartHandler struct {
	template *template.Template
	catalog  *models.Catalog
}

// CartData represents the data passed to the cart template
type CartData struct {
	Page
	Items []LineItem
}

// NewCartHandler creates a new cart handler
func NewCartHandler(templateDir string, catalog *models.Catalog) (*CartHandler, error) {
	tmpl, err := parsePage(templateDir, "cart.html")
	if err != nil {
		return nil, err
	}

	return &CartHandler{
		template: tmpl,
		catalog:  catalog,
	}, nil
}

// ServeHTTP renders the cart
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	session, ok := mustSession(w, r)
	if !ok {
		return
	}

	render(w, h.template, http.StatusOK, CartData{
		Page:  Page{Heading: "Your Cart", CartCount: session.Cart.Count()},
		Items: lineItems(session.Cart.Items(h.catalog)),
	})
}
