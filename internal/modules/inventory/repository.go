package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrProductNotFound is returned when a referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a decrement would take on-hand
	// below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository defines data access for products and their on-hand stock.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Decrement atomically subtracts qty from on-hand, refusing to go below
	// zero. Returns ErrProductNotFound or ErrInsufficientStock accordingly.
	Decrement(ctx context.Context, id uuid.UUID, qty int) error
	// Increment atomically adds qty to on-hand.
	Increment(ctx context.Context, id uuid.UUID, qty int) error
}
