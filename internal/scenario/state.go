package scenario

import (
	"errors"
	"fmt"
	"sync"
)

// State is a checkpoint in a scenario's progress
type State string

// Scenario states
const (
	StateStart                 State = "start"
	StateLoggedIn              State = "logged_in"
	StateItemSelected          State = "item_selected"
	StateCartVerified          State = "cart_verified"
	StateCheckoutInfoSubmitted State = "checkout_info_submitted"
	StateSummaryVerified       State = "summary_verified"
	StateOrderComplete         State = "order_complete"
	StateFailed                State = "failed"
)

// ErrInvalidTransition is returned when a scenario skips a checkpoint or
// moves out of a terminal state.
var ErrInvalidTransition = errors.New("invalid scenario state transition")

var transitions = map[State][]State{
	StateStart:                 {StateLoggedIn},
	StateLoggedIn:              {StateItemSelected},
	StateItemSelected:          {StateCartVerified, StateCheckoutInfoSubmitted},
	StateCheckoutInfoSubmitted: {StateSummaryVerified},
	StateSummaryVerified:       {StateOrderComplete},
}

// CanTransition reports whether next directly follows s
func (s State) CanTransition(next State) bool {
	if next == StateFailed {
		return s != StateFailed
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Progress tracks the states one scenario run passes through
type Progress struct {
	mu      sync.Mutex
	history []State
}

// NewProgress returns a tracker positioned at StateStart
func NewProgress() *Progress {
	return &Progress{history: []State{StateStart}}
}

// State returns the current state
func (p *Progress) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.history[len(p.history)-1]
}

// History returns every state visited, oldest first
func (p *Progress) History() []State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]State(nil), p.history...)
}

// Advance moves to next
func (p *Progress) Advance(next State) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.history[len(p.history)-1]
	if next == StateFailed || !current.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
	}
	p.history = append(p.history, next)
	return nil
}

// Fail moves to StateFailed. Failing twice is a no-op.
func (p *Progress) Fail() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.history[len(p.history)-1] != StateFailed {
		p.history = append(p.history, StateFailed)
	}
}
