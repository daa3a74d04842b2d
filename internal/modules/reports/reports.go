// Package reports is the read side: pure summation over committed records.
// Nothing here mutates state or carries invariants of its own.
package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailySales is one day's sales rollup.
type DailySales struct {
	Date  string          `json:"date"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// LowStockProduct is a product at or below its reorder threshold. The
// comparison runs in the query, so it always reflects the latest on-hand.
type LowStockProduct struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	OnHand       int       `json:"on_hand"`
	ReorderLevel int       `json:"reorder_level"`
}

// SupplierDebt is one supplier's outstanding balance.
type SupplierDebt struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// Repository defines the read-only report queries.
type Repository interface {
	DailySales(ctx context.Context, from, to time.Time) ([]*DailySales, error)
	LowStock(ctx context.Context) ([]*LowStockProduct, error)
	SupplierDebts(ctx context.Context) ([]*SupplierDebt, error)
}

// Service is a thin pass-through; reports have no business rules to apply.
type Service struct{ repo Repository }

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) DailySales(ctx context.Context, from, to time.Time) ([]*DailySales, error) {
	return s.repo.DailySales(ctx, from, to)
}

func (s *Service) LowStock(ctx context.Context) ([]*LowStockProduct, error) {
	return s.repo.LowStock(ctx)
}

func (s *Service) SupplierDebts(ctx context.Context) ([]*SupplierDebt, error) {
	return s.repo.SupplierDebts(ctx)
}
