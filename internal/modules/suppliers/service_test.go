package suppliers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	suppliers map[uuid.UUID]*Supplier
	entries   []*LedgerEntry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{suppliers: make(map[uuid.UUID]*Supplier)}
}

func (f *fakeRepo) Create(ctx context.Context, s *Supplier) error {
	f.suppliers[s.ID] = s
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	s, ok := f.suppliers[id]
	if !ok {
		return nil, ErrSupplierNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]*Supplier, error)  { return nil, nil }
func (f *fakeRepo) Update(ctx context.Context, s *Supplier) error  { return nil }
func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeRepo) ApplyMovement(ctx context.Context, supplierID uuid.UUID, delta decimal.Decimal, entry *LedgerEntry) error {
	s, ok := f.suppliers[supplierID]
	if !ok {
		return ErrSupplierNotFound
	}
	s.Balance = s.Balance.Add(delta)
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeRepo) History(ctx context.Context, supplierID uuid.UUID) ([]*LedgerEntry, error) {
	var out []*LedgerEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].SupplierID == supplierID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func setup(t *testing.T) (Service, *fakeRepo, *Supplier) {
	t.Helper()
	repo := newFakeRepo()
	svc := NewService(repo)
	sup, err := svc.CreateSupplier(context.Background(), CreateSupplierRequest{
		Name:  "Chilanga Wholesale",
		Phone: "+260971234567",
	})
	require.NoError(t, err)
	return svc, repo, sup
}

func amt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestPurchaseThenPaymentRoundTrip(t *testing.T) {
	svc, repo, sup := setup(t)
	ctx := context.Background()

	after, err := svc.RecordPurchase(ctx, sup.ID.String(), MovementRequest{Amount: amt(500), Note: "restock"})
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(amt(500)))

	after, err = svc.RecordPayment(ctx, sup.ID.String(), MovementRequest{Amount: amt(500), Note: "settle"})
	require.NoError(t, err)
	assert.True(t, after.Balance.IsZero(), "balance returns to its pre-purchase value")

	require.Len(t, repo.entries, 2)
	assert.Equal(t, EntryPurchase, repo.entries[0].Kind)
	assert.Equal(t, EntryPayment, repo.entries[1].Kind)
}

func TestDebtScenario(t *testing.T) {
	svc, _, sup := setup(t)
	ctx := context.Background()

	after, err := svc.RecordPurchase(ctx, sup.ID.String(), MovementRequest{Amount: amt(1000), Note: "stock"})
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(amt(1000)))

	history, err := svc.History(ctx, sup.ID.String())
	require.NoError(t, err)
	require.Len(t, history, 1)

	after, err = svc.RecordPayment(ctx, sup.ID.String(), MovementRequest{Amount: amt(1000), Note: "full settlement"})
	require.NoError(t, err)
	assert.True(t, after.Balance.IsZero())

	history, err = svc.History(ctx, sup.ID.String())
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestPaymentMayOverdraw(t *testing.T) {
	svc, _, sup := setup(t)

	after, err := svc.RecordPayment(context.Background(), sup.ID.String(), MovementRequest{Amount: amt(200), Note: "advance"})
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(amt(-200)), "overpayment is a credit, not an error")
}

func TestInvalidAmounts(t *testing.T) {
	svc, repo, sup := setup(t)
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, amt(-50)} {
		_, err := svc.RecordPurchase(ctx, sup.ID.String(), MovementRequest{Amount: amount})
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = svc.RecordPayment(ctx, sup.ID.String(), MovementRequest{Amount: amount})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.Empty(t, repo.entries, "rejected movements must not touch the ledger")
	got, err := svc.GetSupplier(ctx, sup.ID.String())
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
}

func TestSettleFull(t *testing.T) {
	svc, repo, sup := setup(t)
	ctx := context.Background()

	_, err := svc.RecordPurchase(ctx, sup.ID.String(), MovementRequest{Amount: amt(750), Note: "stock"})
	require.NoError(t, err)

	after, err := svc.SettleFull(ctx, sup.ID.String())
	require.NoError(t, err)
	assert.True(t, after.Balance.IsZero())

	require.Len(t, repo.entries, 2)
	last := repo.entries[1]
	assert.Equal(t, EntryPayment, last.Kind)
	assert.True(t, last.Amount.Equal(amt(750)))
	assert.Equal(t, "Full Settlement", last.Note)
}

func TestSettleFullWithNothingOwed(t *testing.T) {
	svc, _, sup := setup(t)

	_, err := svc.SettleFull(context.Background(), sup.ID.String())
	assert.ErrorIs(t, err, ErrInvalidAmount, "a zero balance leaves nothing to settle")
}

func TestMovementUnknownSupplier(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.RecordPurchase(context.Background(), uuid.New().String(), MovementRequest{Amount: amt(100)})
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}
