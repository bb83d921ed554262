package scenario

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/adyen/swaglabs/internal/browser"
	"github.com/adyen/swaglabs/internal/config"
)

// Element selectors on the Swag Labs pages
const (
	selectorUsername       = "#user-name"
	selectorPassword       = "#password"
	selectorLoginButton    = "#login-button"
	selectorInventoryEntry = ".inventory_item_description"
	selectorItemName       = ".inventory_item_name"
	selectorItemDesc       = ".inventory_item_desc"
	selectorItemPrice      = ".inventory_item_price"
	selectorButton         = "button"
	selectorCartBadge      = "#shopping_cart_container .shopping_cart_badge"
	selectorCartItem       = "div.cart_item"
	selectorCheckout       = "#checkout"
	selectorFirstName      = "#first-name"
	selectorLastName       = "#last-name"
	selectorPostalCode     = "#postal-code"
	selectorContinue       = "#continue"
	selectorSubtotal       = "div.summary_subtotal_label"
	selectorFinish         = "#finish"

	addToCartLabel  = "Add to cart"
	itemTotalPrefix = "Item total: "
)

// Item is an inventory entry as scraped from the page
type Item struct {
	Name        string
	Description string
	Price       string
}

// BadgeCount is the cart badge read around an add-to-cart click
type BadgeCount struct {
	Before int
	After  int
}

// Increased reports whether the click grew the cart
func (b BadgeCount) Increased() bool {
	return b.After > b.Before
}

// Shopper is the information typed into checkout step one
type Shopper struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// DefaultShopper is the fixed shopper the checkout scenario submits
var DefaultShopper = Shopper{
	FirstName:  "FirstName",
	LastName:   "LastName",
	PostalCode: "123456",
}

func expectURL(s browser.Session, step, want string) error {
	if err := s.ExpectURL(want); err != nil {
		return &AssertionError{Step: step, Expected: want, Actual: s.URL(), Err: err}
	}
	return nil
}

func readText(l browser.Locator, step string) (string, error) {
	text, err := l.TextContent()
	if err != nil {
		return "", stepFailed(step, err)
	}
	return text, nil
}

// Login signs in with the standard account and lands on the inventory page
func Login(s browser.Session, site *config.SiteConfig, creds config.Credentials) error {
	if err := s.Navigate(site.LoginURL()); err != nil {
		return stepFailed("open login page", err)
	}

	if err := s.ExpectTitle(config.SiteTitle); err != nil {
		title, _ := s.Title()
		return &AssertionError{Step: "login page title", Expected: config.SiteTitle, Actual: title, Err: err}
	}

	if err := s.Fill(selectorUsername, creds.Standard); err != nil {
		return stepFailed("fill username", err)
	}
	if err := s.Fill(selectorPassword, creds.Password); err != nil {
		return stepFailed("fill password", err)
	}
	if err := s.Click(selectorLoginButton); err != nil {
		return stepFailed("click login", err)
	}

	return expectURL(s, "redirect after login", site.InventoryURL())
}

// readBadge returns the cart badge count. When the badge is absent the count
// is zero; with wait set the badge is given the implicit wait budget to
// appear before it is treated as absent.
func readBadge(s browser.Session, wait bool) (int, error) {
	badge := s.Locate(selectorCartBadge)

	if !wait {
		n, err := badge.Count()
		if err != nil {
			return 0, stepFailed("count cart badge", err)
		}
		if n == 0 {
			return 0, nil
		}
	}

	text, err := badge.TextContent()
	if err != nil {
		if wait && errors.Is(err, browser.ErrTimeout) {
			return 0, nil
		}
		return 0, stepFailed("read cart badge", err)
	}

	count, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, stepFailed("parse cart badge", fmt.Errorf("badge text %q is not a number: %w", text, err))
	}
	return count, nil
}

// AddFirstItemToCart adds the first inventory entry that still offers
// "Add to cart" and returns what was shown for it, with the badge count
// before and after the click.
func AddFirstItemToCart(s browser.Session) (Item, BadgeCount, error) {
	var item Item
	var badge BadgeCount

	// Let the listing render before counting
	if _, err := readText(s.Locate(selectorInventoryEntry).First(), "wait for inventory"); err != nil {
		return item, badge, err
	}

	entries := s.Locate(selectorInventoryEntry).Has(selectorButton, addToCartLabel)
	n, err := entries.Count()
	if err != nil {
		return item, badge, stepFailed("count inventory entries", err)
	}
	if n == 0 {
		return item, badge, mismatch("inventory entries offering "+addToCartLabel, "> 0", "0")
	}

	first := entries.First()
	if item.Name, err = readText(first.Locator(selectorItemName), "read item name"); err != nil {
		return item, badge, err
	}
	if item.Description, err = readText(first.Locator(selectorItemDesc), "read item description"); err != nil {
		return item, badge, err
	}
	if item.Price, err = readText(first.Locator(selectorItemPrice), "read item price"); err != nil {
		return item, badge, err
	}

	if badge.Before, err = readBadge(s, false); err != nil {
		return item, badge, err
	}

	if err := first.Locator(selectorButton).Filter(addToCartLabel).Click(); err != nil {
		return item, badge, stepFailed("click "+addToCartLabel, err)
	}

	if badge.After, err = readBadge(s, true); err != nil {
		return item, badge, err
	}

	return item, badge, nil
}

// OpenCart follows the cart badge to the cart page
func OpenCart(s browser.Session, site *config.SiteConfig) error {
	if err := s.Locate(selectorCartBadge).Click(); err != nil {
		return stepFailed("click cart badge", err)
	}
	return expectURL(s, "open cart", site.CartURL())
}

// VerifyLineItem checks that the line item named like item shows the same
// name, description and price
func VerifyLineItem(s browser.Session, page string, item Item) error {
	line := s.Locate(selectorCartItem).Filter(item.Name)

	checks := []struct {
		field    string
		selector string
		want     string
	}{
		{"name", selectorItemName, item.Name},
		{"description", selectorItemDesc, item.Description},
		{"price", selectorItemPrice, item.Price},
	}

	for _, c := range checks {
		step := fmt.Sprintf("%s item %s", page, c.field)
		got, err := readText(line.Locator(c.selector), step)
		if err != nil {
			return err
		}
		if got != c.want {
			return mismatch(step, c.want, got)
		}
	}

	return nil
}

// SubmitCheckoutInfo goes from the cart through checkout step one
func SubmitCheckoutInfo(s browser.Session, site *config.SiteConfig, shopper Shopper) error {
	if err := s.Click(selectorCheckout); err != nil {
		return stepFailed("click checkout", err)
	}
	if err := expectURL(s, "open checkout step one", site.CheckoutStepOneURL()); err != nil {
		return err
	}

	fields := []struct {
		selector string
		value    string
	}{
		{selectorFirstName, shopper.FirstName},
		{selectorLastName, shopper.LastName},
		{selectorPostalCode, shopper.PostalCode},
	}
	for _, f := range fields {
		if err := s.Fill(f.selector, f.value); err != nil {
			return stepFailed("fill "+f.selector, err)
		}
	}

	if err := s.Click(selectorContinue); err != nil {
		return stepFailed("click continue", err)
	}
	return expectURL(s, "open checkout step two", site.CheckoutStepTwoURL())
}

// VerifySubtotal checks the summary subtotal for a single-item order
func VerifySubtotal(s browser.Session, item Item) error {
	text, err := readText(s.Locate(selectorSubtotal).Filter(item.Price), "read item total")
	if err != nil {
		return err
	}
	if want := itemTotalPrefix + item.Price; text != want {
		return mismatch("item total", want, text)
	}
	return nil
}

// FinishOrder places the order from checkout step two
func FinishOrder(s browser.Session, site *config.SiteConfig) error {
	if err := s.Click(selectorFinish); err != nil {
		return stepFailed("click finish", err)
	}
	return expectURL(s, "complete checkout", site.CheckoutCompleteURL())
}
