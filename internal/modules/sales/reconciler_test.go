package sales_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mbewe/duka-backend/internal/modules/sales"
)

func TestSweepResolvesRetryableFailure(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "Sugar 1kg", 50, 10, 2)
	failure := &sales.StockSyncFailure{
		ID:        uuid.New(),
		SaleID:    uuid.New(),
		ProductID: p.ID,
		Quantity:  4,
	}
	require.NoError(t, f.repo.RecordSyncFailure(context.Background(), failure))

	rec := sales.NewReconciler(f.repo, f.stock, zap.NewNop(), 50)
	rec.Sweep(context.Background())

	assert.Equal(t, 6, f.stock.onHand(t, p.ID))
	pending, err := f.repo.PendingSyncFailures(context.Background(), 50)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSweepAbandonsDeletedProduct(t *testing.T) {
	f := newFixture()
	failure := &sales.StockSyncFailure{
		ID:        uuid.New(),
		SaleID:    uuid.New(),
		ProductID: uuid.New(), // never existed
		Quantity:  4,
	}
	require.NoError(t, f.repo.RecordSyncFailure(context.Background(), failure))

	rec := sales.NewReconciler(f.repo, f.stock, zap.NewNop(), 50)
	rec.Sweep(context.Background())

	pending, err := f.repo.PendingSyncFailures(context.Background(), 50)
	require.NoError(t, err)
	assert.Empty(t, pending, "a decrement that can never apply is closed out")
}

func TestSweepLeavesInsufficientStockPending(t *testing.T) {
	f := newFixture()
	p := f.addProduct(t, "Sugar 1kg", 50, 1, 2)
	failure := &sales.StockSyncFailure{
		ID:        uuid.New(),
		SaleID:    uuid.New(),
		ProductID: p.ID,
		Quantity:  4,
	}
	require.NoError(t, f.repo.RecordSyncFailure(context.Background(), failure))

	rec := sales.NewReconciler(f.repo, f.stock, zap.NewNop(), 50)
	rec.Sweep(context.Background())

	assert.Equal(t, 1, f.stock.onHand(t, p.ID))
	pending, err := f.repo.PendingSyncFailures(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, pending, 1, "an intake may land later; keep retrying")

	// stock arrives, next sweep clears it
	require.NoError(t, f.stock.Increment(context.Background(), p.ID, 10))
	rec.Sweep(context.Background())
	assert.Equal(t, 7, f.stock.onHand(t, p.ID))
	pending, err = f.repo.PendingSyncFailures(context.Background(), 50)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
