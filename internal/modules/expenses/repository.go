package expenses

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrExpenseNotFound is returned when no expense exists for the given id.
var ErrExpenseNotFound = errors.New("expense not found")

// Repository defines data access for the expense log.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	List(ctx context.Context, from, to time.Time) ([]*Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
