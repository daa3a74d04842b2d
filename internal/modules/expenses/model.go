package expenses

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is one entry in the shop's shared expense log.
type Expense struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Category  string          `json:"category,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	SpentAt   time.Time       `json:"spent_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateExpenseRequest is the payload for logging an expense.
type CreateExpenseRequest struct {
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note"`
	SpentAt  time.Time       `json:"spent_at"`
}
