package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mbewe/duka-backend/internal/modules/cart"
	"github.com/mbewe/duka-backend/internal/modules/inventory"
	"github.com/mbewe/duka-backend/internal/modules/sales"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeStock struct {
	mu            sync.Mutex
	products      map[uuid.UUID]*inventory.Product
	decrementErrs map[uuid.UUID]error
}

func newFakeStock() *fakeStock {
	return &fakeStock{
		products:      make(map[uuid.UUID]*inventory.Product),
		decrementErrs: make(map[uuid.UUID]error),
	}
}

func (f *fakeStock) Create(ctx context.Context, p *inventory.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[p.ID] = p
	return nil
}

func (f *fakeStock) GetByID(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, inventory.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStock) List(ctx context.Context) ([]*inventory.Product, error) { return nil, nil }
func (f *fakeStock) Update(ctx context.Context, p *inventory.Product) error { return nil }
func (f *fakeStock) Delete(ctx context.Context, id uuid.UUID) error         { return nil }

func (f *fakeStock) Decrement(ctx context.Context, id uuid.UUID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.decrementErrs[id]; ok {
		return err
	}
	p, ok := f.products[id]
	if !ok {
		return inventory.ErrProductNotFound
	}
	if p.OnHand < qty {
		return inventory.ErrInsufficientStock
	}
	p.OnHand -= qty
	return nil
}

func (f *fakeStock) Increment(ctx context.Context, id uuid.UUID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return inventory.ErrProductNotFound
	}
	p.OnHand += qty
	return nil
}

func (f *fakeStock) onHand(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.OnHand
}

type fakeSaleRepo struct {
	mu        sync.Mutex
	sales     map[uuid.UUID]*sales.Sale
	failures  []*sales.StockSyncFailure
	createErr error
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*sales.Sale)}
}

func (f *fakeSaleRepo) CreateSale(ctx context.Context, s *sales.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.sales[s.ID] = s
	return nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sales[id]
	if !ok {
		return nil, sales.ErrSaleNotFound
	}
	return s, nil
}

func (f *fakeSaleRepo) List(ctx context.Context, from, to time.Time) ([]*sales.Sale, error) {
	return nil, nil
}

func (f *fakeSaleRepo) RecordSyncFailure(ctx context.Context, fail *sales.StockSyncFailure) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, fail)
	return nil
}

func (f *fakeSaleRepo) PendingSyncFailures(ctx context.Context, limit int) ([]*sales.StockSyncFailure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*sales.StockSyncFailure
	for _, fail := range f.failures {
		if fail.ResolvedAt == nil && len(out) < limit {
			out = append(out, fail)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) ResolveSyncFailure(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fail := range f.failures {
		if fail.ID == id {
			now := time.Now()
			fail.ResolvedAt = &now
		}
	}
	return nil
}

type stubEmitter struct{ emitted int }

func (e *stubEmitter) Emit(s *sales.Sale) string {
	e.emitted++
	return "RECEIPT " + s.ID.String()
}

// ── helpers ───────────────────────────────────────────────────────────────────

type fixture struct {
	stock   *fakeStock
	repo    *fakeSaleRepo
	carts   *cart.Store
	emitter *stubEmitter
	svc     sales.Service
}

func newFixture() *fixture {
	f := &fixture{
		stock:   newFakeStock(),
		repo:    newFakeSaleRepo(),
		carts:   cart.NewStore(),
		emitter: &stubEmitter{},
	}
	f.svc = sales.NewService(f.repo, f.stock, f.carts, f.emitter, zap.NewNop())
	return f
}

func (f *fixture) addProduct(t *testing.T, name string, price int64, onHand, reorder int) *inventory.Product {
	t.Helper()
	p := &inventory.Product{
		ID:           uuid.New(),
		Name:         name,
		Unit:         "pcs",
		SellingPrice: decimal.NewFromInt(price),
		OnHand:       onHand,
		ReorderLevel: reorder,
	}
	require.NoError(t, f.stock.Create(context.Background(), p))
	return p
}

func (f *fixture) cartWith(t *testing.T, p *inventory.Product, qty int) *cart.Cart {
	t.Helper()
	c := f.carts.Open()
	require.NoError(t, c.Add(p))
	if qty > 1 {
		require.NoError(t, c.SetQuantity(p.ID, qty-1))
	}
	return c
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestCommitSuccess(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "Sugar 1kg", 50, 10, 5)
	c := f.cartWith(t, p, 3)

	result, err := f.svc.Commit(context.Background(), sales.CommitRequest{
		CartID:        c.ID.String(),
		PaymentMethod: "CASH",
	})
	require.NoError(t, err)

	assert.True(t, result.Sale.Total.Equal(decimal.NewFromInt(150)))
	require.Len(t, result.Sale.Lines, 1)
	assert.Equal(t, 3, result.Sale.Lines[0].Quantity)
	assert.True(t, result.Sale.Lines[0].Subtotal.Equal(decimal.NewFromInt(150)))
	assert.NotEmpty(t, result.Receipt)

	// exactly one durable sale, stock decremented once by the line quantity
	assert.Len(t, f.repo.sales, 1)
	assert.Equal(t, 7, f.stock.onHand(t, p.ID))

	got, err := f.stock.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsLowStock(), "7 on hand is above the reorder level of 5")

	// cart is spent
	_, err = f.carts.Get(c.ID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestCommitCrossesReorderThreshold(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "Sugar 1kg", 50, 7, 5)
	c := f.cartWith(t, p, 3)

	_, err := f.svc.Commit(context.Background(), sales.CommitRequest{
		CartID:        c.ID.String(),
		PaymentMethod: "CASH",
	})
	require.NoError(t, err)

	got, err := f.stock.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.OnHand)
	assert.True(t, got.IsLowStock(), "4 on hand is at or below the reorder level of 5")
}

func TestCommitTotalMatchesCart(t *testing.T) {
	f := newFixture()
	p1 := f.addProduct(t, "Sugar 1kg", 50, 10, 2)
	p2 := f.addProduct(t, "Cooking Oil", 120, 6, 2)
	c := f.carts.Open()
	require.NoError(t, c.Add(p1))
	require.NoError(t, c.SetQuantity(p1.ID, 1)) // qty 2
	require.NoError(t, c.Add(p2))               // qty 1
	cartTotal := c.Total()

	result, err := f.svc.Commit(context.Background(), sales.CommitRequest{
		CartID:        c.ID.String(),
		PaymentMethod: "MOBILE_MONEY",
	})
	require.NoError(t, err)
	assert.True(t, result.Sale.Total.Equal(cartTotal))

	sum := decimal.Zero
	for _, l := range result.Sale.Lines {
		sum = sum.Add(l.Subtotal)
	}
	assert.True(t, result.Sale.Total.Equal(sum), "total must equal the sum of line subtotals")
}

func TestCommitEmptyCart(t *testing.T) {
	f := newFixture()
	c := f.carts.Open()

	_, err := f.svc.Commit(context.Background(), sales.CommitRequest{
		CartID:        c.ID.String(),
		PaymentMethod: "CASH",
	})
	require.ErrorIs(t, err, sales.ErrEmptyCart)
	assert.Empty(t, f.repo.sales)
}

func TestCommitInvalidPaymentMethod(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "Bread", 20, 5, 1)
	c := f.cartWith(t, p, 1)

	_, err := f.svc.Commit(context.Background(), sales.CommitRequest{
		CartID:        c.ID.String(),
		PaymentMethod: "GOATS",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payment_method")
	assert.Empty(t, f.repo.sales)
	assert.Equal(t, 5, f.stock.onHand(t, p.ID))
}

func TestCommitRevalidatesAgainstLiveStock(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "Sugar 1kg", 50, 10, 2)
	c := f.cartWith(t, p, 3)

	// another till sold most of the stock after the cart snapshot
	f.stock.mu.Lock()
	f.stock.products[p.ID].OnHand = 2
	f.stock.mu.Unlock()

	_, err := f.svc.Commit(context.Background(), sales.CommitRequest{
		CartID:        c.ID.String(),
		PaymentMethod: "CASH",
	})
	require.ErrorIs(t, err, cart.ErrExceedsStock)
	assert.Empty(t, f.repo.sales, "no sale may be written when validation fails")
	assert.Equal(t, 2, f.stock.onHand(t, p.ID), "no decrement may run either")
}

func TestCommitSaleWriteFailed(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "Sugar 1kg", 50, 10, 2)
	c := f.cartWith(t, p, 3)
	f.repo.createErr = errors.New("connection reset")

	_, err := f.svc.Commit(context.Background(), sales.CommitRequest{
		CartID:        c.ID.String(),
		PaymentMethod: "CASH",
	})
	require.ErrorIs(t, err, sales.ErrSaleWriteFailed)
	assert.Equal(t, 10, f.stock.onHand(t, p.ID), "stock untouched when the sale write fails")

	// the commit is retryable: the cart must still be there
	_, err = f.carts.Get(c.ID)
	assert.NoError(t, err)
}

func TestCommitPartialStockSync(t *testing.T) {
	f := newFixture()
	good := f.addProduct(t, "Sugar 1kg", 50, 10, 2)
	bad := f.addProduct(t, "Cooking Oil", 120, 6, 2)
	f.stock.decrementErrs[bad.ID] = errors.New("write conflict")

	c := f.carts.Open()
	require.NoError(t, c.Add(good))
	require.NoError(t, c.Add(bad))

	_, err := f.svc.Commit(context.Background(), sales.CommitRequest{
		CartID:        c.ID.String(),
		PaymentMethod: "CASH",
	})

	var partial *sales.PartialStockSyncError
	require.ErrorAs(t, err, &partial)
	require.Len(t, partial.FailedProducts, 1)
	assert.Equal(t, bad.ID, partial.FailedProducts[0])

	// the sale is durable despite the failure, and the good decrement landed
	assert.Len(t, f.repo.sales, 1)
	assert.Equal(t, 9, f.stock.onHand(t, good.ID))
	assert.Equal(t, 6, f.stock.onHand(t, bad.ID))

	// the failed decrement is queued for the reconciler
	require.Len(t, f.repo.failures, 1)
	assert.Equal(t, bad.ID, f.repo.failures[0].ProductID)
	assert.Equal(t, 1, f.repo.failures[0].Quantity)
	assert.Equal(t, partial.SaleID, f.repo.failures[0].SaleID)
}

func TestCommitFreezesPrices(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "Sugar 1kg", 50, 10, 2)
	c := f.cartWith(t, p, 2)

	// price hike between add and commit must not affect this sale
	f.stock.mu.Lock()
	f.stock.products[p.ID].SellingPrice = decimal.NewFromInt(80)
	f.stock.mu.Unlock()

	result, err := f.svc.Commit(context.Background(), sales.CommitRequest{
		CartID:        c.ID.String(),
		PaymentMethod: "CASH",
	})
	require.NoError(t, err)
	assert.True(t, result.Sale.Lines[0].UnitPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, result.Sale.Total.Equal(decimal.NewFromInt(100)))
}
