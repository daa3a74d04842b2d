package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines mobile-money push business logic.
type Service interface {
	// InitiatePush sends a payment prompt to the customer's phone and
	// records the attempt as PENDING.
	InitiatePush(ctx context.Context, req InitiatePushRequest) (*PushTransaction, error)
	// HandleCallback records the provider's asynchronous verdict. It never
	// mutates stock or sales; payment confirmation and sale commit are
	// separate concerns.
	HandleCallback(ctx context.Context, raw []byte) (*PushTransaction, error)
	GetTransaction(ctx context.Context, id string) (*PushTransaction, error)
	ListTransactions(ctx context.Context) ([]*PushTransaction, error)
}

type service struct {
	repo    Repository
	gateway Gateway
	log     *zap.Logger
}

// NewService creates a new payments service.
func NewService(repo Repository, gateway Gateway, log *zap.Logger) Service {
	return &service{repo: repo, gateway: gateway, log: log}
}

func (s *service) InitiatePush(ctx context.Context, req InitiatePushRequest) (*PushTransaction, error) {
	if req.PhoneNumber == "" {
		return nil, fmt.Errorf("phone_number is required")
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than 0")
	}
	ack, err := s.gateway.Push(ctx, req.PhoneNumber, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("push initiation failed: %w", err)
	}
	t := &PushTransaction{
		ID:                uuid.New(),
		PhoneNumber:       req.PhoneNumber,
		Amount:            req.Amount,
		MerchantRequestID: ack.MerchantRequestID,
		Status:            PushPending,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info("mobile money push initiated",
		zap.String("merchant_request_id", t.MerchantRequestID),
		zap.String("phone_number", t.PhoneNumber),
		zap.String("amount", t.Amount.String()))
	return t, nil
}

func (s *service) HandleCallback(ctx context.Context, raw []byte) (*PushTransaction, error) {
	var cb CallbackPayload
	if err := json.Unmarshal(raw, &cb); err != nil {
		return nil, fmt.Errorf("malformed callback: %w", err)
	}
	if cb.MerchantRequestID == "" {
		return nil, fmt.Errorf("callback missing merchant_request_id")
	}
	t, err := s.repo.GetByMerchantRef(ctx, cb.MerchantRequestID)
	if err != nil {
		return nil, err
	}
	status := PushFailed
	if cb.ResultCode == 0 {
		status = PushCompleted
	}
	if err := s.repo.RecordCallback(ctx, t.ID, status, cb, raw); err != nil {
		return nil, err
	}
	s.log.Info("mobile money callback recorded",
		zap.String("merchant_request_id", cb.MerchantRequestID),
		zap.Int("result_code", cb.ResultCode),
		zap.String("status", string(status)))
	return s.repo.GetByID(ctx, t.ID)
}

func (s *service) GetTransaction(ctx context.Context, id string) (*PushTransaction, error) {
	tid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction id: %w", err)
	}
	return s.repo.GetByID(ctx, tid)
}

func (s *service) ListTransactions(ctx context.Context) ([]*PushTransaction, error) {
	return s.repo.List(ctx)
}
