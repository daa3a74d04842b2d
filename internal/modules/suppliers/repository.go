package suppliers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrSupplierNotFound is returned when a referenced supplier does not exist.
	ErrSupplierNotFound = errors.New("supplier not found")
	// ErrInvalidAmount is returned for a non-positive movement amount.
	ErrInvalidAmount = errors.New("amount must be a positive number")
)

// Repository defines data access for suppliers and their ledger.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	List(ctx context.Context) ([]*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplyMovement adds delta to the supplier's balance and appends the
	// ledger entry in the same transaction, so a balance change can never
	// exist without its audit record.
	ApplyMovement(ctx context.Context, supplierID uuid.UUID, delta decimal.Decimal, entry *LedgerEntry) error
	// History returns the supplier's ledger entries, newest first.
	History(ctx context.Context, supplierID uuid.UUID) ([]*LedgerEntry, error)
}
