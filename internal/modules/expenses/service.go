package expenses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines expense-log business logic.
type Service interface {
	LogExpense(ctx context.Context, req CreateExpenseRequest) (*Expense, error)
	GetExpense(ctx context.Context, id string) (*Expense, error)
	ListExpenses(ctx context.Context, from, to time.Time) ([]*Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new expense service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) LogExpense(ctx context.Context, req CreateExpenseRequest) (*Expense, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than 0")
	}
	spentAt := req.SpentAt
	if spentAt.IsZero() {
		spentAt = time.Now()
	}
	e := &Expense{
		ID:       uuid.New(),
		Title:    strings.TrimSpace(req.Title),
		Category: req.Category,
		Amount:   req.Amount,
		Note:     req.Note,
		SpentAt:  spentAt,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetExpense(ctx context.Context, id string) (*Expense, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid expense id: %w", err)
	}
	return s.repo.GetByID(ctx, eid)
}

func (s *service) ListExpenses(ctx context.Context, from, to time.Time) ([]*Expense, error) {
	return s.repo.List(ctx, from, to)
}

func (s *service) DeleteExpense(ctx context.Context, id string) error {
	eid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid expense id: %w", err)
	}
	return s.repo.Delete(ctx, eid)
}
