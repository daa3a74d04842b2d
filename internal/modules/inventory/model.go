package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a stocked item. OnHand is the authoritative sellable quantity;
// every sale commit decrements it and every intake increments it.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"` // e.g. pcs, kg, litre
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	OnHand       int             `json:"on_hand"`
	ReorderLevel int             `json:"reorder_level"`
	LowStock     bool            `json:"low_stock"` // derived, never stored
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IsLowStock reports whether the product is at or below its reorder threshold.
// Computed against the latest on-hand value so it can never go stale.
func (p *Product) IsLowStock() bool { return p.OnHand <= p.ReorderLevel }

// CreateProductRequest is the payload for adding a product to the catalog.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	OnHand       int             `json:"on_hand"`
	ReorderLevel int             `json:"reorder_level"`
}

// UpdateProductRequest is the payload for a direct inventory edit.
type UpdateProductRequest struct {
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	OnHand       int             `json:"on_hand"`
	ReorderLevel int             `json:"reorder_level"`
}

// AdjustStockRequest is the payload for a stock intake or correction.
type AdjustStockRequest struct {
	Quantity int `json:"quantity"` // positive adds stock, negative removes
}
