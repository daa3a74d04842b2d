package suppliers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplier is a distributor the shop buys from. Balance is the running debt
// owed to them; it may go negative when the shop overpays.
type Supplier struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// EntryKind tags a ledger entry as debt taken on or debt paid down.
type EntryKind string

const (
	EntryPurchase EntryKind = "PURCHASE"
	EntryPayment  EntryKind = "PAYMENT"
)

// LedgerEntry is one immutable financial movement against a supplier
// balance. Entries reference the supplier by id, never by name.
type LedgerEntry struct {
	ID         uuid.UUID       `json:"id"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	Kind       EntryKind       `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CreateSupplierRequest is the payload for registering a supplier.
type CreateSupplierRequest struct {
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Balance decimal.Decimal `json:"balance"` // opening debt, usually zero
}

// MovementRequest is the payload for a purchase-on-credit or a payment.
type MovementRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}
