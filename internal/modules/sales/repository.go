package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSaleNotFound is returned when no sale exists for the given id.
	ErrSaleNotFound = errors.New("sale not found")
	// ErrEmptyCart is returned when committing a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSaleWriteFailed wraps a failure to persist the sale record. Nothing
	// has been decremented when this is returned; the commit is safe to retry.
	ErrSaleWriteFailed = errors.New("sale write failed")
)

// PartialStockSyncError reports a commit whose sale record is durable but
// whose stock decrements did not all land. The sale is never rolled back;
// the failed decrements are queued for the reconciliation sweep.
type PartialStockSyncError struct {
	SaleID         uuid.UUID
	FailedProducts []uuid.UUID
}

func (e *PartialStockSyncError) Error() string {
	return fmt.Sprintf("sale %s committed but stock was not decremented for %d product(s)",
		e.SaleID, len(e.FailedProducts))
}

// Repository defines data access for sales and the stock-sync outbox.
type Repository interface {
	CreateSale(ctx context.Context, s *Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	List(ctx context.Context, from, to time.Time) ([]*Sale, error)

	RecordSyncFailure(ctx context.Context, f *StockSyncFailure) error
	PendingSyncFailures(ctx context.Context, limit int) ([]*StockSyncFailure, error)
	ResolveSyncFailure(ctx context.Context, id uuid.UUID) error
}
