package cart

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrCartNotFound is returned when no cart exists for the given id.
var ErrCartNotFound = errors.New("cart not found")

// Store holds the live carts for open checkout sessions, keyed by cart id.
// Carts are ephemeral by design: a restart discards them, and nothing here
// ever reaches the database.
type Store struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*Cart
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*Cart)}
}

// Open starts a new checkout session and returns its cart.
func (s *Store) Open() *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := New()
	s.carts[c.ID] = c
	return c
}

// Get returns the cart for the given id.
func (s *Store) Get(id uuid.UUID) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	return c, nil
}

// Discard drops the cart, committed or not.
func (s *Store) Discard(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}
