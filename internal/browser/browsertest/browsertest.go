// Package browsertest provides an in-memory browser.Driver for exercising
// scenario logic without launching a browser. Pages are described as
// element trees rendered by a Site.
package browsertest

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/adyen/swaglabs/internal/browser"
)

// Element is a node in a rendered page. It matches a selector when the
// selector string appears in Selectors verbatim.
type Element struct {
	Selectors []string
	Content   string
	Children  []*Element
	OnClick   func() error
	OnFill    func(value string) error
}

func (e *Element) matches(selector string) bool {
	for _, s := range e.Selectors {
		if s == selector {
			return true
		}
	}
	return false
}

// Find returns descendants matching selector in document order
func (e *Element) Find(selector string) ([]browser.Element, error) {
	return findAll(e.Children, selector), nil
}

// Text returns the element content followed by its children's text
func (e *Element) Text() (string, error) {
	var b strings.Builder
	b.WriteString(e.Content)
	for _, child := range e.Children {
		text, _ := child.Text()
		b.WriteString(text)
	}
	return b.String(), nil
}

func (e *Element) Click() error {
	if e.OnClick == nil {
		return fmt.Errorf("element %v is not clickable", e.Selectors)
	}
	return e.OnClick()
}

func (e *Element) Fill(value string) error {
	if e.OnFill == nil {
		return fmt.Errorf("element %v is not editable", e.Selectors)
	}
	return e.OnFill(value)
}

func findAll(nodes []*Element, selector string) []browser.Element {
	var found []browser.Element
	for _, node := range nodes {
		if node.matches(selector) {
			found = append(found, node)
		}
		found = append(found, findAll(node.Children, selector)...)
	}
	return found
}

// Site is a scripted web site. Implementations keep their own navigation
// state and change it from element callbacks.
type Site interface {
	Visit(url string) error
	CurrentURL() string
	Title() string
	Render() []*Element
}

// Session is a browser.Session backed by a Site. Waits make one attempt,
// so a missing element fails immediately with browser.ErrTimeout.
type Session struct {
	site Site

	mu     sync.Mutex
	closed bool
}

// NewSession returns a session showing site
func NewSession(site Site) *Session {
	return &Session{site: site}
}

// Closed reports whether Close has been called
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) Find(selector string) ([]browser.Element, error) {
	if s.Closed() {
		return nil, browser.ErrSessionClosed
	}
	return findAll(s.site.Render(), selector), nil
}

func (s *Session) Navigate(url string) error {
	if s.Closed() {
		return browser.ErrSessionClosed
	}
	return s.site.Visit(url)
}

func (s *Session) Title() (string, error) {
	if s.Closed() {
		return "", browser.ErrSessionClosed
	}
	return s.site.Title(), nil
}

func (s *Session) URL() string {
	return s.site.CurrentURL()
}

func (s *Session) Locate(selector string) browser.Locator {
	return browser.NewLocator(s, selector, browser.Once)
}

func (s *Session) Fill(selector, value string) error {
	return s.Locate(selector).Fill(value)
}

func (s *Session) Click(selector string) error {
	return s.Locate(selector).Click()
}

func (s *Session) ExpectTitle(want string) error {
	if got := s.site.Title(); got != want {
		return fmt.Errorf("%w: title: want %q, got %q", browser.ErrExpectation, want, got)
	}
	return nil
}

func (s *Session) ExpectURL(want string) error {
	if got := s.site.CurrentURL(); got != want {
		return fmt.Errorf("%w: url: want %q, got %q", browser.ErrExpectation, want, got)
	}
	return nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return browser.ErrSessionClosed
	}
	s.closed = true
	return nil
}

// Driver hands out sessions over freshly built sites
type Driver struct {
	newSite func() Site

	mu       sync.Mutex
	sessions []*Session
	closed   bool
	// FailSessions makes NewSession return an error.
	FailSessions bool
}

// NewDriver returns a driver that builds one Site per session
func NewDriver(newSite func() Site) *Driver {
	return &Driver{newSite: newSite}
}

func (d *Driver) NewSession() (browser.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, errors.New("driver is closed")
	}
	if d.FailSessions {
		return nil, errors.New("browser context refused")
	}
	session := NewSession(d.newSite())
	d.sessions = append(d.sessions, session)
	return session, nil
}

// Sessions returns every session handed out so far
func (d *Driver) Sessions() []*Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Session(nil), d.sessions...)
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
