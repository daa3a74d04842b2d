package sales

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mbewe/duka-backend/internal/modules/cart"
	"github.com/mbewe/duka-backend/internal/modules/inventory"
)

// ReceiptEmitter renders a committed sale for display or print. It must be
// pure: emitting the same sale twice yields identical text.
type ReceiptEmitter interface {
	Emit(s *Sale) string
}

// Service defines the sale commit engine and read access to past sales.
type Service interface {
	// Commit converts a non-empty cart into a durable sale and decrements
	// stock for every line. See the method on service for the ordering and
	// failure contract.
	Commit(ctx context.Context, req CommitRequest) (*CommitResult, error)
	GetSale(ctx context.Context, id string) (*Sale, error)
	ListSales(ctx context.Context, from, to time.Time) ([]*Sale, error)
	Receipt(ctx context.Context, id string) (string, error)
	PendingSyncFailures(ctx context.Context) ([]*StockSyncFailure, error)
}

type service struct {
	repo     Repository
	stock    inventory.Repository
	carts    *cart.Store
	receipts ReceiptEmitter
	log      *zap.Logger
}

// NewService creates the sale commit engine.
func NewService(repo Repository, stock inventory.Repository, carts *cart.Store, receipts ReceiptEmitter, log *zap.Logger) Service {
	return &service{repo: repo, stock: stock, carts: carts, receipts: receipts, log: log}
}

// Commit runs the consequential path of the whole system:
//
//  1. re-validate every cart line against live stock (the add-time snapshot
//     is stale by now);
//  2. persist the sale record — on failure nothing else happens and the
//     commit is safe to retry;
//  3. issue all stock decrements concurrently and wait for every one;
//  4. decrements that fail are queued for the reconciliation sweep and the
//     commit returns *PartialStockSyncError — the sale stays durable.
//
// The sale's line prices come from the cart, never re-read from the product,
// and its total always equals the sum of line subtotals.
func (s *service) Commit(ctx context.Context, req CommitRequest) (*CommitResult, error) {
	cartID, err := uuid.Parse(req.CartID)
	if err != nil {
		return nil, fmt.Errorf("invalid cart id: %w", err)
	}
	method := PaymentMethod(strings.ToUpper(req.PaymentMethod))
	switch method {
	case PaymentCash, PaymentMobileMoney:
	default:
		return nil, fmt.Errorf("invalid payment_method: %s (allowed: CASH, MOBILE_MONEY)", req.PaymentMethod)
	}

	c, err := s.carts.Get(cartID)
	if err != nil {
		return nil, err
	}
	if c.Empty() {
		return nil, ErrEmptyCart
	}

	lines := make([]SaleLine, 0, len(c.Lines))
	total := decimal.Zero
	for _, line := range c.Lines {
		// The form layer should have caught these, but the engine does not
		// trust its callers.
		if line.Quantity < 1 {
			return nil, fmt.Errorf("invalid quantity %d for %s", line.Quantity, line.Name)
		}
		if line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("invalid unit price for %s", line.Name)
		}
		p, err := s.stock.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("validating %s: %w", line.Name, err)
		}
		if line.Quantity > p.OnHand {
			return nil, fmt.Errorf("%s: %w (requested %d, on hand %d)",
				line.Name, cart.ErrExceedsStock, line.Quantity, p.OnHand)
		}
		sub := line.Subtotal()
		lines = append(lines, SaleLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Unit:      line.Unit,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  sub,
		})
		total = total.Add(sub)
	}

	sale := &Sale{
		ID:            uuid.New(),
		Lines:         lines,
		Total:         total,
		PaymentMethod: method,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.CreateSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaleWriteFailed, err)
	}

	// One independent decrement per line, all in flight at once. The engine
	// waits for every outcome; it must know each product that failed, not
	// just the first.
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []failedDecrement
	)
	for _, line := range sale.Lines {
		wg.Add(1)
		go func(l SaleLine) {
			defer wg.Done()
			if err := s.stock.Decrement(ctx, l.ProductID, l.Quantity); err != nil {
				mu.Lock()
				failed = append(failed, failedDecrement{line: l, err: err})
				mu.Unlock()
			}
		}(line)
	}
	wg.Wait()

	// The cart is spent either way: the sale is durable, and re-committing
	// it would duplicate the sale. Stock repair belongs to the reconciler.
	s.carts.Discard(cartID)

	if len(failed) > 0 {
		perr := &PartialStockSyncError{SaleID: sale.ID}
		for _, f := range failed {
			perr.FailedProducts = append(perr.FailedProducts, f.line.ProductID)
			s.log.Error("stock decrement failed after sale commit",
				zap.String("sale_id", sale.ID.String()),
				zap.String("product_id", f.line.ProductID.String()),
				zap.Int("quantity", f.line.Quantity),
				zap.Error(f.err))
			record := &StockSyncFailure{
				ID:        uuid.New(),
				SaleID:    sale.ID,
				ProductID: f.line.ProductID,
				Quantity:  f.line.Quantity,
				Reason:    f.err.Error(),
			}
			if err := s.repo.RecordSyncFailure(ctx, record); err != nil {
				// Worst case: the failure is only in the log. The operator
				// still sees the error response.
				s.log.Error("could not queue stock sync failure",
					zap.String("sale_id", sale.ID.String()),
					zap.String("product_id", f.line.ProductID.String()),
					zap.Error(err))
			}
		}
		return nil, perr
	}

	return &CommitResult{Sale: sale, Receipt: s.receipts.Emit(sale)}, nil
}

type failedDecrement struct {
	line SaleLine
	err  error
}

func (s *service) GetSale(ctx context.Context, id string) (*Sale, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid sale id: %w", err)
	}
	return s.repo.GetByID(ctx, sid)
}

func (s *service) ListSales(ctx context.Context, from, to time.Time) ([]*Sale, error) {
	return s.repo.List(ctx, from, to)
}

// Receipt re-emits the receipt for a committed sale. Safe to call any number
// of times; the output is identical on every call.
func (s *service) Receipt(ctx context.Context, id string) (string, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return "", err
	}
	return s.receipts.Emit(sale), nil
}

func (s *service) PendingSyncFailures(ctx context.Context) ([]*StockSyncFailure, error) {
	return s.repo.PendingSyncFailures(ctx, 100)
}
