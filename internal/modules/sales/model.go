package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a sale was paid.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "CASH"
	PaymentMobileMoney PaymentMethod = "MOBILE_MONEY"
)

// Sale is a committed checkout. It is immutable once written: line prices are
// frozen from the cart, so a later price edit never alters a completed sale.
type Sale struct {
	ID            uuid.UUID       `json:"id"`
	Lines         []SaleLine      `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaleLine is one product on a sale, with the price captured at commit.
type SaleLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// StockSyncFailure is an outbox row for a stock decrement that failed after
// its sale was already durable. The reconciliation sweep retries these.
type StockSyncFailure struct {
	ID         uuid.UUID  `json:"id"`
	SaleID     uuid.UUID  `json:"sale_id"`
	ProductID  uuid.UUID  `json:"product_id"`
	Quantity   int        `json:"quantity"`
	Reason     string     `json:"reason"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// CommitRequest is the payload to turn a cart into a sale.
type CommitRequest struct {
	CartID        string `json:"cart_id"`
	PaymentMethod string `json:"payment_method"`
}

// CommitResult is what a successful commit returns to the counter.
type CommitResult struct {
	Sale    *Sale  `json:"sale"`
	Receipt string `json:"receipt"`
}
