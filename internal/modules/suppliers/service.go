package suppliers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service defines debt-ledger business logic.
type Service interface {
	CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*Supplier, error)
	GetSupplier(ctx context.Context, id string) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]*Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error

	// RecordPurchase increases the supplier's debt and appends a PURCHASE
	// ledger entry.
	RecordPurchase(ctx context.Context, id string, req MovementRequest) (*Supplier, error)
	// RecordPayment decreases the supplier's debt and appends a PAYMENT
	// ledger entry. The balance may go negative; that is an overpayment
	// credit, not an error.
	RecordPayment(ctx context.Context, id string, req MovementRequest) (*Supplier, error)
	// SettleFull pays the entire outstanding balance in one movement.
	SettleFull(ctx context.Context, id string) (*Supplier, error)
	History(ctx context.Context, id string) ([]*LedgerEntry, error)
}

type service struct{ repo Repository }

// NewService creates a new supplier debt-ledger service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*Supplier, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	sup := &Supplier{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Phone:   req.Phone,
		Balance: req.Balance,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) GetSupplier(ctx context.Context, id string) (*Supplier, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier id: %w", err)
	}
	return s.repo.GetByID(ctx, sid)
}

func (s *service) ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	return s.repo.List(ctx)
}

func (s *service) DeleteSupplier(ctx context.Context, id string) error {
	sid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid supplier id: %w", err)
	}
	return s.repo.Delete(ctx, sid)
}

func (s *service) RecordPurchase(ctx context.Context, id string, req MovementRequest) (*Supplier, error) {
	return s.move(ctx, id, EntryPurchase, req.Amount, req.Note)
}

func (s *service) RecordPayment(ctx context.Context, id string, req MovementRequest) (*Supplier, error) {
	return s.move(ctx, id, EntryPayment, req.Amount, req.Note)
}

func (s *service) SettleFull(ctx context.Context, id string) (*Supplier, error) {
	sup, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.move(ctx, id, EntryPayment, sup.Balance, "Full Settlement")
}

func (s *service) History(ctx context.Context, id string) ([]*LedgerEntry, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier id: %w", err)
	}
	return s.repo.History(ctx, sid)
}

func (s *service) move(ctx context.Context, id string, kind EntryKind, amount decimal.Decimal, note string) (*Supplier, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier id: %w", err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w, got %s", ErrInvalidAmount, amount)
	}
	delta := amount
	if kind == EntryPayment {
		delta = amount.Neg()
	}
	entry := &LedgerEntry{
		ID:         uuid.New(),
		SupplierID: sid,
		Kind:       kind,
		Amount:     amount,
		Note:       note,
	}
	if err := s.repo.ApplyMovement(ctx, sid, delta, entry); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, sid)
}
