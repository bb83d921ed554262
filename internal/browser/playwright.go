package browser

import (
	"errors"
	"fmt"

	"github.com/adyen/swaglabs/internal/config"
	"github.com/playwright-community/playwright-go"
)

// PlaywrightDriver runs sessions as Playwright browser contexts
type PlaywrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	timeout float64
	expect  playwright.PlaywrightAssertions
}

// NewPlaywrightDriver starts Playwright and launches the configured browser.
// Browsers must already be installed:
//
//	go run github.com/playwright-community/playwright-go/cmd/playwright@latest install chromium
func NewPlaywrightDriver(cfg *config.BrowserConfig) (*PlaywrightDriver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch cfg.Browser {
	case config.BrowserFirefox:
		browserType = pw.Firefox
	case config.BrowserWebKit:
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", cfg.Browser, err)
	}

	timeout := float64(cfg.Timeout.Milliseconds())
	return &PlaywrightDriver{
		pw:      pw,
		browser: browser,
		timeout: timeout,
		expect:  playwright.NewPlaywrightAssertions(timeout),
	}, nil
}

// NewSession opens a new browser context and page
func (d *PlaywrightDriver) NewSession() (Session, error) {
	bctx, err := d.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	bctx.SetDefaultTimeout(d.timeout)
	bctx.SetDefaultNavigationTimeout(d.timeout)

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &playwrightSession{context: bctx, page: page, expect: d.expect}, nil
}

// Close shuts the browser and the Playwright driver down
func (d *PlaywrightDriver) Close() error {
	if err := d.browser.Close(); err != nil {
		d.pw.Stop()
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return d.pw.Stop()
}

type playwrightSession struct {
	context playwright.BrowserContext
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
}

func (s *playwrightSession) Navigate(url string) error {
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, translatePlaywright(err))
	}
	return nil
}

func (s *playwrightSession) Title() (string, error) {
	return s.page.Title()
}

func (s *playwrightSession) URL() string {
	return s.page.URL()
}

func (s *playwrightSession) Locate(selector string) Locator {
	return &playwrightLocator{page: s.page, locator: s.page.Locator(selector), desc: selector}
}

func (s *playwrightSession) Fill(selector, value string) error {
	return s.Locate(selector).Fill(value)
}

func (s *playwrightSession) Click(selector string) error {
	return s.Locate(selector).Click()
}

func (s *playwrightSession) ExpectTitle(want string) error {
	if err := s.expect.Page(s.page).ToHaveTitle(want); err != nil {
		title, _ := s.page.Title()
		return expectationError("title", want, title)
	}
	return nil
}

func (s *playwrightSession) ExpectURL(want string) error {
	if err := s.expect.Page(s.page).ToHaveURL(want); err != nil {
		return expectationError("url", want, s.page.URL())
	}
	return nil
}

func (s *playwrightSession) Close() error {
	if err := s.page.Close(); err != nil {
		s.context.Close()
		return fmt.Errorf("failed to close page: %w", err)
	}
	return s.context.Close()
}

type playwrightLocator struct {
	page    playwright.Page
	locator playwright.Locator
	desc    string
}

func (l *playwrightLocator) Count() (int, error) {
	n, err := l.locator.Count()
	return n, translatePlaywright(err)
}

func (l *playwrightLocator) First() Locator {
	return l.derive(l.locator.First(), " >> first")
}

func (l *playwrightLocator) Locator(selector string) Locator {
	return l.derive(l.locator.Locator(selector), " >> "+selector)
}

func (l *playwrightLocator) derive(locator playwright.Locator, step string) *playwrightLocator {
	return &playwrightLocator{page: l.page, locator: locator, desc: l.desc + step}
}

func (l *playwrightLocator) Filter(text string) Locator {
	return l.derive(l.locator.Filter(playwright.LocatorFilterOptions{HasText: text}),
		fmt.Sprintf(" >> has-text=%q", text))
}

// Has builds the inner locator from the page; Playwright resolves it
// relative to each candidate.
func (l *playwrightLocator) Has(selector, text string) Locator {
	inner := l.page.Locator(selector)
	desc := selector
	if text != "" {
		inner = inner.Filter(playwright.LocatorFilterOptions{HasText: text})
		desc += fmt.Sprintf(" >> has-text=%q", text)
	}
	return l.derive(l.locator.Filter(playwright.LocatorFilterOptions{Has: inner}),
		fmt.Sprintf(" >> has=%q", desc))
}

func (l *playwrightLocator) TextContent() (string, error) {
	text, err := l.locator.TextContent()
	if err != nil {
		return "", fmt.Errorf("%s: %w", l.desc, translatePlaywright(err))
	}
	return text, nil
}

func (l *playwrightLocator) Click() error {
	if err := l.locator.Click(); err != nil {
		return fmt.Errorf("%s: %w", l.desc, translatePlaywright(err))
	}
	return nil
}

func (l *playwrightLocator) Fill(value string) error {
	if err := l.locator.Fill(value); err != nil {
		return fmt.Errorf("%s: %w", l.desc, translatePlaywright(err))
	}
	return nil
}

// translatePlaywright maps Playwright timeouts onto ErrTimeout
func translatePlaywright(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
