package scenario

import (
	"strconv"
	"strings"
	"sync"

	"github.com/adyen/swaglabs/internal/browser/browsertest"
	"github.com/adyen/swaglabs/internal/config"
)

const testBaseURL = "https://shop.test/"

type shopItem struct {
	name  string
	desc  string
	cents int
}

func (i shopItem) price() string {
	return formatCents(i.cents)
}

func formatCents(cents int) string {
	return "$" + strconv.Itoa(cents/100) + "." + strconv.Itoa(cents%100/10) + strconv.Itoa(cents%10)
}

// fakeShop is a scripted Swag Labs. Fields below the mutex inject faults.
type fakeShop struct {
	mu sync.Mutex

	url         string
	username    string
	password    string
	items       []shopItem
	cart        []int
	shopper     Shopper
	orderPlaced bool

	title          string
	ignoreAdd      bool
	cartPrice      string
	summaryDesc    string
	subtotalPrefix string
	badgeText      string
	stuckOnStepOne bool
}

func newFakeShop() *fakeShop {
	return &fakeShop{
		url:            testBaseURL,
		title:          config.SiteTitle,
		subtotalPrefix: "Item total: ",
		items: []shopItem{
			{"Sauce Labs Backpack", "carry.allTheThings() with the sleek, streamlined Sly Pack.", 2999},
			{"Sauce Labs Bike Light", "A red light isn't the desired state in testing.", 999},
			{"Sauce Labs Bolt T-Shirt", "Get your testing superhero on.", 1599},
		},
	}
}

func (s *fakeShop) Visit(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	return nil
}

func (s *fakeShop) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

func (s *fakeShop) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

func (s *fakeShop) goTo(path string) func() error {
	return func() error {
		s.url = testBaseURL + path
		return nil
	}
}

func (s *fakeShop) inCart(i int) bool {
	for _, c := range s.cart {
		if c == i {
			return true
		}
	}
	return false
}

// Render builds the current page. Element callbacks run after it returns
// and take the lock themselves.
func (s *fakeShop) Render() []*browsertest.Element {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := strings.TrimPrefix(s.url, testBaseURL)
	switch path {
	case "":
		return s.loginPage()
	case "inventory.html":
		return append(s.header(), s.inventoryPage()...)
	case "cart.html":
		return append(s.header(), s.cartPage()...)
	case "checkout-step-one.html":
		return append(s.header(), s.stepOnePage()...)
	case "checkout-step-two.html":
		return append(s.header(), s.stepTwoPage()...)
	default:
		return s.header()
	}
}

func (s *fakeShop) locked(fn func() error) func() error {
	return func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return fn()
	}
}

func (s *fakeShop) lockedFill(fn func(string)) func(string) error {
	return func(v string) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		fn(v)
		return nil
	}
}

func (s *fakeShop) loginPage() []*browsertest.Element {
	return []*browsertest.Element{
		{Selectors: []string{"#user-name"}, OnFill: s.lockedFill(func(v string) { s.username = v })},
		{Selectors: []string{"#password"}, OnFill: s.lockedFill(func(v string) { s.password = v })},
		{Selectors: []string{"#login-button"}, OnClick: s.locked(func() error {
			if s.username == config.StandardUser && s.password == config.SharedPassword {
				s.url = testBaseURL + "inventory.html"
			}
			return nil
		})},
	}
}

func (s *fakeShop) header() []*browsertest.Element {
	if len(s.cart) == 0 {
		return nil
	}
	text := s.badgeText
	if text == "" {
		text = strconv.Itoa(len(s.cart))
	}
	return []*browsertest.Element{{
		Selectors: []string{selectorCartBadge},
		Content:   text,
		OnClick:   s.locked(s.goTo("cart.html")),
	}}
}

func fields(item shopItem, price, desc string) []*browsertest.Element {
	return []*browsertest.Element{
		{Selectors: []string{selectorItemName}, Content: item.name},
		{Selectors: []string{selectorItemDesc}, Content: desc},
		{Selectors: []string{selectorItemPrice}, Content: price},
	}
}

func (s *fakeShop) inventoryPage() []*browsertest.Element {
	var entries []*browsertest.Element
	for i, item := range s.items {
		i := i
		label := "Add to cart"
		if s.inCart(i) {
			label = "Remove"
		}
		button := &browsertest.Element{
			Selectors: []string{"button"},
			Content:   label,
			OnClick: s.locked(func() error {
				if !s.ignoreAdd && !s.inCart(i) {
					s.cart = append(s.cart, i)
				}
				return nil
			}),
		}
		entries = append(entries, &browsertest.Element{
			Selectors: []string{selectorInventoryEntry},
			Children:  append(fields(item, item.price(), item.desc), button),
		})
	}
	return entries
}

func (s *fakeShop) lines(price, desc string) []*browsertest.Element {
	var lines []*browsertest.Element
	for _, i := range s.cart {
		item := s.items[i]
		p, d := item.price(), item.desc
		if price != "" {
			p = price
		}
		if desc != "" {
			d = desc
		}
		lines = append(lines, &browsertest.Element{
			Selectors: []string{selectorCartItem},
			Children:  fields(item, p, d),
		})
	}
	return lines
}

func (s *fakeShop) cartPage() []*browsertest.Element {
	return append(s.lines(s.cartPrice, ""), &browsertest.Element{
		Selectors: []string{selectorCheckout},
		OnClick:   s.locked(s.goTo("checkout-step-one.html")),
	})
}

func (s *fakeShop) stepOnePage() []*browsertest.Element {
	return []*browsertest.Element{
		{Selectors: []string{selectorFirstName}, OnFill: s.lockedFill(func(v string) { s.shopper.FirstName = v })},
		{Selectors: []string{selectorLastName}, OnFill: s.lockedFill(func(v string) { s.shopper.LastName = v })},
		{Selectors: []string{selectorPostalCode}, OnFill: s.lockedFill(func(v string) { s.shopper.PostalCode = v })},
		{Selectors: []string{selectorContinue}, OnClick: s.locked(func() error {
			if s.stuckOnStepOne || s.shopper.FirstName == "" || s.shopper.LastName == "" || s.shopper.PostalCode == "" {
				return nil
			}
			s.url = testBaseURL + "checkout-step-two.html"
			return nil
		})},
	}
}

func (s *fakeShop) stepTwoPage() []*browsertest.Element {
	total := 0
	for _, i := range s.cart {
		total += s.items[i].cents
	}
	return append(s.lines("", s.summaryDesc),
		&browsertest.Element{
			Selectors: []string{selectorSubtotal},
			Content:   s.subtotalPrefix + formatCents(total),
		},
		&browsertest.Element{
			Selectors: []string{selectorFinish},
			OnClick: s.locked(func() error {
				s.orderPlaced = true
				s.cart = nil
				s.url = testBaseURL + "checkout-complete.html"
				return nil
			}),
		},
	)
}
