package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/adyen/swaglabs/internal/models"
	"github.com/adyen/swaglabs/internal/services"
)

// CheckoutInfoHandler handles checkout step one, the shopper form
type CheckoutInfoHandler struct {
	template *template.Template
	checkout services.CheckoutService
}

// CheckoutInfoData represents the data passed to the step one template
type CheckoutInfoData struct {
	Page
	Shopper models.Shopper
	Error   string
}

// NewCheckoutInfoHandler creates a new step one handler
func NewCheckoutInfoHandler(templateDir string, checkout services.CheckoutService) (*CheckoutInfoHandler, error) {
	tmpl, err := parsePage(templateDir, "checkout_step_one.html")
	if err != nil {
		return nil, err
	}

	return &CheckoutInfoHandler{
		template: tmpl,
		checkout: checkout,
	}, nil
}

// ServeHTTP renders the form on GET and stores the information on POST
func (h *CheckoutInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, ok := mustSession(w, r)
	if !ok {
		return
	}

	page := Page{Heading: "Checkout: Your Information", CartCount: session.Cart.Count()}

	switch r.Method {
	case http.MethodGet:
		render(w, h.template, http.StatusOK, CheckoutInfoData{Page: page, Shopper: session.Shopper})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}

		shopper := models.Shopper{
			FirstName:  r.PostFormValue("firstName"),
			LastName:   r.PostFormValue("lastName"),
			PostalCode: r.PostFormValue("postalCode"),
		}
		if _, err := h.checkout.SubmitShopper(session.ID, shopper); err != nil {
			var rejected *services.ShopperError
			if errors.As(err, &rejected) {
				render(w, h.template, http.StatusOK, CheckoutInfoData{Page: page, Shopper: rejected.Shopper, Error: rejected.Error()})
				return
			}
			log.Printf("Error saving checkout information: %v", err)
			http.Error(w, "Failed to save checkout information", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/checkout-step-two.html", http.StatusSeeOther)
	default:
		methodNotAllowed(w)
	}
}

// CheckoutOverviewHandler handles checkout step two, the order summary
type CheckoutOverviewHandler struct {
	template *template.Template
	checkout services.CheckoutService
}

// CheckoutOverviewData represents the data passed to the step two template
type CheckoutOverviewData struct {
	Page
	Items    []LineItem
	Subtotal string
	Tax      string
	Total    string
}

// NewCheckoutOverviewHandler creates a new step two handler
func NewCheckoutOverviewHandler(templateDir string, checkout services.CheckoutService) (*CheckoutOverviewHandler, error) {
	tmpl, err := parsePage(templateDir, "checkout_step_two.html")
	if err != nil {
		return nil, err
	}

	return &CheckoutOverviewHandler{
		template: tmpl,
		checkout: checkout,
	}, nil
}

// ServeHTTP renders the summary on GET and places the order on POST
func (h *CheckoutOverviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, ok := mustSession(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		if session.Shopper.Validate() != nil {
			http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
			return
		}
		h.renderOverview(w, session)
	case http.MethodPost:
		order, err := h.checkout.Finish(session.ID)
		switch {
		case err == nil:
			log.Printf("Checkout complete for %s: %s", session.Username, order.Reference)
			http.Redirect(w, r, "/checkout-complete.html", http.StatusSeeOther)
		case errors.Is(err, services.ErrCheckoutUnavailable):
			// The site's broken Finish button leaves the shopper on the summary.
			log.Printf("Finish ignored for %s", session.Username)
			h.renderOverview(w, session)
		case errors.Is(err, services.ErrEmptyCart):
			http.Redirect(w, r, "/cart.html", http.StatusSeeOther)
		case errors.Is(err, services.ErrShopperMissing):
			http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
		default:
			log.Printf("Error finishing checkout: %v", err)
			http.Error(w, "Failed to place order", http.StatusInternalServerError)
		}
	default:
		methodNotAllowed(w)
	}
}

func (h *CheckoutOverviewHandler) renderOverview(w http.ResponseWriter, session *services.Session) {
	overview, err := h.checkout.Overview(session.ID)
	if err != nil {
		log.Printf("Error building checkout overview: %v", err)
		http.Error(w, "Failed to load checkout overview", http.StatusInternalServerError)
		return
	}

	render(w, h.template, http.StatusOK, CheckoutOverviewData{
		Page:     Page{Heading: "Checkout: Overview", CartCount: session.Cart.Count()},
		Items:    lineItems(overview.Items),
		Subtotal: models.FormatCents(overview.Summary.Subtotal),
		Tax:      models.FormatCents(overview.Summary.Tax),
		Total:    models.FormatCents(overview.Summary.Total),
	})
}

// CheckoutCompleteHandler shows the order confirmation
type CheckoutCompleteHandler struct {
	template *template.Template
	orders   services.OrderService
}

// CheckoutCompleteData represents the data passed to the confirmation template
type CheckoutCompleteData struct {
	Page
	Order *models.Order
}

// NewCheckoutCompleteHandler creates a new confirmation handler
func NewCheckoutCompleteHandler(templateDir string, orders services.OrderService) (*CheckoutCompleteHandler, error) {
	tmpl, err := parsePage(templateDir, "checkout_complete.html")
	if err != nil {
		return nil, err
	}

	return &CheckoutCompleteHandler{
		template: tmpl,
		orders:   orders,
	}, nil
}

// ServeHTTP renders the confirmation for the session's last order
func (h *CheckoutCompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	session, ok := mustSession(w, r)
	if !ok {
		return
	}

	data := CheckoutCompleteData{
		Page: Page{Heading: "Checkout: Complete!", CartCount: session.Cart.Count()},
	}

	if session.LastOrderRef != "" {
		order, err := h.orders.GetOrderByReference(session.LastOrderRef)
		if err != nil {
			log.Printf("Error loading order %s: %v", session.LastOrderRef, err)
		} else {
			data.Order = order
		}
	}

	render(w, h.template, http.StatusOK, data)
}
