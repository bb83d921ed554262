package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adyen/swaglabs/internal/config"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/rod/lib/utils"
)

// RodDriver runs sessions as incognito contexts of one Chrome process
type RodDriver struct {
	browser *rod.Browser
	timeout time.Duration
}

// NewRodDriver launches Chrome through the rod launcher
func NewRodDriver(cfg *config.BrowserConfig) (*RodDriver, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	return &RodDriver{browser: browser, timeout: cfg.Timeout}, nil
}

// NewSession opens a page in a fresh incognito context
func (d *RodDriver) NewSession() (Session, error) {
	incognito, err := d.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("failed to create incognito context: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		incognito.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &rodSession{context: incognito, page: page, timeout: d.timeout}, nil
}

// Close shuts Chrome down
func (d *RodDriver) Close() error {
	return d.browser.Close()
}

type rodSession struct {
	context *rod.Browser
	page    *rod.Page
	timeout time.Duration
}

// wait retries attempt with backoff until the session timeout
func (s *rodSession) wait(what string, attempt func() (bool, error)) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err := utils.Retry(ctx, utils.BackoffSleeper(50*time.Millisecond, 500*time.Millisecond, nil), attempt)
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutError(what)
	}
	return err
}

func (s *rodSession) Navigate(url string) error {
	page := s.page.Timeout(s.timeout)
	defer page.CancelTimeout()

	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("page %s did not load: %w", url, err)
	}
	return nil
}

func (s *rodSession) info() (*proto.TargetTargetInfo, error) {
	return s.page.Info()
}

func (s *rodSession) Title() (string, error) {
	info, err := s.info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

func (s *rodSession) URL() string {
	info, err := s.info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Find queries the current document without waiting
func (s *rodSession) Find(selector string) ([]Element, error) {
	els, err := s.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapRodElements(els, s.timeout), nil
}

func (s *rodSession) Locate(selector string) Locator {
	return NewLocator(s, selector, s.wait)
}

func (s *rodSession) Fill(selector, value string) error {
	return s.Locate(selector).Fill(value)
}

func (s *rodSession) Click(selector string) error {
	return s.Locate(selector).Click()
}

func (s *rodSession) ExpectTitle(want string) error {
	err := s.wait("title", func() (bool, error) {
		title, err := s.Title()
		return err == nil && title == want, nil
	})
	if err != nil {
		title, _ := s.Title()
		return expectationError("title", want, title)
	}
	return nil
}

func (s *rodSession) ExpectURL(want string) error {
	err := s.wait("url", func() (bool, error) {
		return s.URL() == want, nil
	})
	if err != nil {
		return expectationError("url", want, s.URL())
	}
	return nil
}

func (s *rodSession) Close() error {
	if err := s.page.Close(); err != nil {
		s.context.Close()
		return fmt.Errorf("failed to close page: %w", err)
	}
	return s.context.Close()
}

type rodElement struct {
	el      *rod.Element
	timeout time.Duration
}

func wrapRodElements(els rod.Elements, timeout time.Duration) []Element {
	wrapped := make([]Element, len(els))
	for i, el := range els {
		wrapped[i] = &rodElement{el: el, timeout: timeout}
	}
	return wrapped
}

func (e *rodElement) Find(selector string) ([]Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapRodElements(els, e.timeout), nil
}

func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e *rodElement) Click() error {
	el := e.el.Timeout(e.timeout)
	defer el.CancelTimeout()
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) Fill(value string) error {
	el := e.el.Timeout(e.timeout)
	defer el.CancelTimeout()
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(value)
}
