package browser

import (
	"fmt"
	"strings"
)

// Finder resolves a CSS selector within a scope
type Finder interface {
	Find(selector string) ([]Element, error)
}

// Element is one resolved node
type Element interface {
	Finder
	Text() (string, error)
	Click() error
	Fill(value string) error
}

// Waiter calls attempt until it reports done, returns an error, or the wait
// budget is spent. On timeout it returns an error wrapping ErrTimeout.
type Waiter func(what string, attempt func() (done bool, err error)) error

// Once is a Waiter that makes a single attempt
func Once(what string, attempt func() (bool, error)) error {
	done, err := attempt()
	if err != nil {
		return err
	}
	if !done {
		return timeoutError(what)
	}
	return nil
}

type query struct {
	selector string
	text     string
	has      *query
	first    bool
}

func (q query) String() string {
	s := q.selector
	if q.text != "" {
		s += fmt.Sprintf(" >> has-text=%q", q.text)
	}
	if q.has != nil {
		s += fmt.Sprintf(" >> has=%q", q.has.String())
	}
	if q.first {
		s += " >> first"
	}
	return s
}

// normalizeText lowercases s and collapses whitespace runs to one space,
// the way Playwright compares has-text filters
func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func containsText(text, want string) bool {
	return strings.Contains(normalizeText(text), normalizeText(want))
}

// matches applies the text and descendant filters of q to el
func (q query) matches(el Element) (bool, error) {
	if q.text != "" {
		text, err := el.Text()
		if err != nil {
			return false, err
		}
		if !containsText(text, q.text) {
			return false, nil
		}
	}
	if q.has == nil {
		return true, nil
	}

	found, err := el.Find(q.has.selector)
	if err != nil {
		return false, err
	}
	for _, child := range found {
		ok, err := q.has.matches(child)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// chainLocator implements Locator over any Finder. It is used by drivers
// whose native API has no lazy locator.
type chainLocator struct {
	root    Finder
	queries []query
	wait    Waiter
}

// NewLocator returns a Locator rooted at root that waits with wait
func NewLocator(root Finder, selector string, wait Waiter) Locator {
	return &chainLocator{
		root:    root,
		queries: []query{{selector: selector}},
		wait:    wait,
	}
}

func (l *chainLocator) String() string {
	parts := make([]string, len(l.queries))
	for i, q := range l.queries {
		parts[i] = q.String()
	}
	return strings.Join(parts, " >> ")
}

// derive copies the chain and edits its last query
func (l *chainLocator) derive(edit func(q *query)) *chainLocator {
	queries := append([]query(nil), l.queries...)
	edit(&queries[len(queries)-1])
	return &chainLocator{root: l.root, queries: queries, wait: l.wait}
}

func (l *chainLocator) First() Locator {
	return l.derive(func(q *query) { q.first = true })
}

func (l *chainLocator) Filter(text string) Locator {
	return l.derive(func(q *query) { q.text = text })
}

func (l *chainLocator) Has(selector, text string) Locator {
	return l.derive(func(q *query) { q.has = &query{selector: selector, text: text} })
}

func (l *chainLocator) Locator(selector string) Locator {
	queries := append(append([]query(nil), l.queries...), query{selector: selector})
	return &chainLocator{root: l.root, queries: queries, wait: l.wait}
}

func (l *chainLocator) resolve() ([]Element, error) {
	scopes := []Finder{l.root}
	var matched []Element

	for _, q := range l.queries {
		matched = nil
		for _, scope := range scopes {
			found, err := scope.Find(q.selector)
			if err != nil {
				return nil, err
			}
			for _, el := range found {
				ok, err := q.matches(el)
				if err != nil {
					return nil, err
				}
				if ok {
					matched = append(matched, el)
				}
			}
		}
		if q.first && len(matched) > 1 {
			matched = matched[:1]
		}

		scopes = make([]Finder, len(matched))
		for i, el := range matched {
			scopes[i] = el
		}
	}

	return matched, nil
}

func (l *chainLocator) Count() (int, error) {
	matched, err := l.resolve()
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

// act waits for the first match and applies fn to it. Resolution errors are
// retried since the document may be mid-navigation.
func (l *chainLocator) act(fn func(el Element) error) error {
	return l.wait(l.String(), func() (bool, error) {
		matched, err := l.resolve()
		if err != nil || len(matched) == 0 {
			return false, nil
		}
		return true, fn(matched[0])
	})
}

func (l *chainLocator) TextContent() (string, error) {
	var text string
	err := l.act(func(el Element) error {
		var err error
		text, err = el.Text()
		return err
	})
	return text, err
}

func (l *chainLocator) Click() error {
	return l.act(func(el Element) error { return el.Click() })
}

func (l *chainLocator) Fill(value string) error {
	return l.act(func(el Element) error { return el.Fill(value) })
}
