package payments

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTransactionNotFound is returned when no push transaction matches.
var ErrTransactionNotFound = errors.New("push transaction not found")

// Repository defines data access for push transactions.
type Repository interface {
	Create(ctx context.Context, t *PushTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*PushTransaction, error)
	GetByMerchantRef(ctx context.Context, merchantRequestID string) (*PushTransaction, error)
	List(ctx context.Context) ([]*PushTransaction, error)
	// RecordCallback stores the provider's verdict plus the raw payload
	// verbatim for audit.
	RecordCallback(ctx context.Context, id uuid.UUID, status PushStatus, cb CallbackPayload, raw []byte) error
}
