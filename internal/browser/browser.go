// Package browser is the boundary between scenarios and the browser
// automation libraries. Scenarios only see Driver, Session and Locator.
package browser

import (
	"errors"
	"fmt"

	"github.com/adyen/swaglabs/internal/config"
)

var (
	// ErrTimeout is wrapped by every error caused by an element that did not
	// appear within the implicit wait budget.
	ErrTimeout = errors.New("timed out waiting for element")

	// ErrExpectation is wrapped by page assertions (title, URL) that did not
	// hold within the implicit wait budget.
	ErrExpectation = errors.New("page expectation not met")

	// ErrSessionClosed is returned when a closed session is used.
	ErrSessionClosed = errors.New("browser session is closed")
)

// Driver owns a browser process and hands out isolated sessions
type Driver interface {
	// NewSession opens a fresh browser context with its own cookies and storage.
	NewSession() (Session, error)
	Close() error
}

// Session is one isolated tab
type Session interface {
	Navigate(url string) error
	Title() (string, error)
	// URL returns the current page URL, or "" when it cannot be read.
	URL() string
	Locate(selector string) Locator
	Fill(selector, value string) error
	Click(selector string) error
	// ExpectTitle waits until the document title equals want.
	ExpectTitle(want string) error
	// ExpectURL waits until the page URL equals want.
	ExpectURL(want string) error
	Close() error
}

// Locator is a lazy query. Count resolves immediately; the other reads and
// actions wait for a match up to the driver timeout.
type Locator interface {
	Count() (int, error)
	First() Locator
	// Locator narrows the query to descendants matching selector.
	Locator(selector string) Locator
	// Filter keeps matches whose text contains text, ignoring case and
	// runs of whitespace.
	Filter(text string) Locator
	// Has keeps matches with a descendant matching selector whose text
	// contains text. An empty text matches any such descendant.
	Has(selector, text string) Locator
	TextContent() (string, error)
	Click() error
	Fill(value string) error
}

// Open launches the driver named in cfg
func Open(cfg *config.BrowserConfig) (Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid browser configuration: %w", err)
	}

	switch cfg.Driver {
	case config.DriverPlaywright:
		return NewPlaywrightDriver(cfg)
	case config.DriverRod:
		return NewRodDriver(cfg)
	case config.DriverSelenium:
		return NewSeleniumDriver(cfg)
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

func timeoutError(what string) error {
	return fmt.Errorf("%w: %s", ErrTimeout, what)
}

func expectationError(what, want, got string) error {
	return fmt.Errorf("%w: %s: want %q, got %q", ErrExpectation, what, want, got)
}
