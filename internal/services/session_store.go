package services

import (
	"errors"
	"sync"

	"github.com/adyen/swaglabs/internal/models"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side state behind a shopper's session cookie
type Session struct {
	ID       string
	Username string
	// Faulty mirrors models.Account.Faulty for the signed-in account.
	Faulty       bool
	Cart         *models.Cart
	Shopper      models.Shopper
	LastOrderRef string
}

func (s *Session) clone() *Session {
	c := *s
	c.Cart = s.Cart.Clone()
	return &c
}

// SessionStore keeps shopper sessions
type SessionStore interface {
	Create(account models.Account) (*Session, error)
	Get(id string) (*Session, error)
	// Modify applies fn to the stored session atomically. Changes are
	// discarded when fn returns an error.
	Modify(id string, fn func(*Session) error) (*Session, error)
	Delete(id string) error
}

// MemorySessionStore implements SessionStore in process memory
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemorySessionStore creates an empty session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*Session),
	}
}

// Create starts a session with an empty cart for account
func (s *MemorySessionStore) Create(account models.Account) (*Session, error) {
	session := &Session{
		ID:       uuid.New().String(),
		Username: account.Username,
		Faulty:   account.Faulty,
		Cart:     &models.Cart{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session

	return session.clone(), nil
}

// Get returns a snapshot of the session
func (s *MemorySessionStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session.clone(), nil
}

// Modify updates a session under the store lock
func (s *MemorySessionStore) Modify(id string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	updated := session.clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.ID = id
	s.sessions[id] = updated

	return updated.clone(), nil
}

// Delete ends a session. Deleting an unknown session is not an error.
func (s *MemorySessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
