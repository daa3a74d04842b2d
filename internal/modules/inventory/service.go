package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines inventory business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, req AdjustStockRequest) (*Product, error)
}

type service struct{ repo Repository }

// NewService creates a new inventory service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.SellingPrice.IsNegative() || req.CostPrice.IsNegative() {
		return nil, fmt.Errorf("prices cannot be negative")
	}
	if req.OnHand < 0 || req.ReorderLevel < 0 {
		return nil, fmt.Errorf("quantities cannot be negative")
	}
	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}
	p := &Product{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Unit:         unit,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		OnHand:       req.OnHand,
		ReorderLevel: req.ReorderLevel,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.LowStock = p.IsLowStock()
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	p, err := s.repo.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	p.LowStock = p.IsLowStock()
	return p, nil
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		p.LowStock = p.IsLowStock()
	}
	return products, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	if req.SellingPrice.IsNegative() || req.CostPrice.IsNegative() {
		return nil, fmt.Errorf("prices cannot be negative")
	}
	if req.OnHand < 0 || req.ReorderLevel < 0 {
		return nil, fmt.Errorf("quantities cannot be negative")
	}
	p, err := s.repo.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Unit = req.Unit
	p.CostPrice = req.CostPrice
	p.SellingPrice = req.SellingPrice
	p.OnHand = req.OnHand
	p.ReorderLevel = req.ReorderLevel
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	p.LowStock = p.IsLowStock()
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}
	return s.repo.Delete(ctx, pid)
}

func (s *service) AdjustStock(ctx context.Context, id string, req AdjustStockRequest) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	if req.Quantity == 0 {
		return nil, fmt.Errorf("quantity must be non-zero")
	}
	if req.Quantity > 0 {
		err = s.repo.Increment(ctx, pid, req.Quantity)
	} else {
		err = s.repo.Decrement(ctx, pid, -req.Quantity)
	}
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	p.LowStock = p.IsLowStock()
	return p, nil
}
