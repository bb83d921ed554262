// Package scenario runs the Swag Labs end-to-end scenarios. Each scenario is
// a fixed, strictly sequential list of steps executed in its own browser
// session; the first failed step ends the scenario.
package scenario

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adyen/swaglabs/internal/browser"
	"github.com/adyen/swaglabs/internal/config"
)

// Scenario is one independently executed end-to-end case
type Scenario struct {
	Name string
	// Final is the state a successful run ends in.
	Final State
	run   func(r *execution) error
}

// Options tunes how scenarios run
type Options struct {
	Credentials config.Credentials
	Shopper     Shopper
	// VerifyCheckoutBadge makes the checkout scenario assert that adding the
	// item grew the cart badge, as the add-to-cart scenario always does.
	VerifyCheckoutBadge bool
}

// execution is the state of one scenario run
type execution struct {
	ctx      context.Context
	session  browser.Session
	site     *config.SiteConfig
	opts     Options
	progress *Progress
	item     *Item
}

// advance runs fn and moves to next when it succeeds. A cancelled context
// stops the scenario before fn runs.
func (e *execution) advance(next State, fn func() error) error {
	if err := e.ctx.Err(); err != nil {
		return fmt.Errorf("scenario stopped before %s: %w", next, err)
	}
	if err := fn(); err != nil {
		return err
	}
	return e.progress.Advance(next)
}

func (e *execution) login() error {
	return e.advance(StateLoggedIn, func() error {
		return Login(e.session, e.site, e.opts.Credentials)
	})
}

func (e *execution) selectItem(verifyBadge bool) error {
	return e.advance(StateItemSelected, func() error {
		item, badge, err := AddFirstItemToCart(e.session)
		if err != nil {
			return err
		}
		e.item = &item

		if verifyBadge && !badge.Increased() {
			return mismatch("cart badge after "+addToCartLabel,
				"> "+strconv.Itoa(badge.Before), strconv.Itoa(badge.After))
		}
		return nil
	})
}

// LoginScenario signs in with the standard account
func LoginScenario() Scenario {
	return Scenario{
		Name:  config.ScenarioLogin,
		Final: StateLoggedIn,
		run: func(e *execution) error {
			return e.login()
		},
	}
}

// AddToCartScenario adds the first available item and checks the cart page
// shows it unchanged
func AddToCartScenario() Scenario {
	return Scenario{
		Name:  config.ScenarioAddToCart,
		Final: StateCartVerified,
		run: func(e *execution) error {
			if err := e.login(); err != nil {
				return err
			}
			if err := e.selectItem(true); err != nil {
				return err
			}
			return e.advance(StateCartVerified, func() error {
				if err := OpenCart(e.session, e.site); err != nil {
					return err
				}
				return VerifyLineItem(e.session, "cart", *e.item)
			})
		},
	}
}

// CheckoutScenario buys the first available item
func CheckoutScenario() Scenario {
	return Scenario{
		Name:  config.ScenarioCheckout,
		Final: StateOrderComplete,
		run: func(e *execution) error {
			if err := e.login(); err != nil {
				return err
			}
			if err := e.selectItem(e.opts.VerifyCheckoutBadge); err != nil {
				return err
			}
			if err := e.advance(StateCheckoutInfoSubmitted, func() error {
				if err := OpenCart(e.session, e.site); err != nil {
					return err
				}
				return SubmitCheckoutInfo(e.session, e.site, e.opts.Shopper)
			}); err != nil {
				return err
			}
			if err := e.advance(StateSummaryVerified, func() error {
				if err := VerifyLineItem(e.session, "summary", *e.item); err != nil {
					return err
				}
				return VerifySubtotal(e.session, *e.item)
			}); err != nil {
				return err
			}
			return e.advance(StateOrderComplete, func() error {
				return FinishOrder(e.session, e.site)
			})
		},
	}
}

// All returns every scenario in declaration order
func All() []Scenario {
	return []Scenario{LoginScenario(), AddToCartScenario(), CheckoutScenario()}
}

// ByName looks a scenario up by its name
func ByName(name string) (Scenario, error) {
	for _, sc := range All() {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q", name)
}

// Select resolves names in order
func Select(names []string) ([]Scenario, error) {
	scenarios := make([]Scenario, 0, len(names))
	for _, name := range names {
		sc, err := ByName(name)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}
