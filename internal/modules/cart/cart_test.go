package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbewe/duka-backend/internal/modules/inventory"
)

func product(name string, price int64, onHand int) *inventory.Product {
	return &inventory.Product{
		ID:           uuid.New(),
		Name:         name,
		Unit:         "pcs",
		SellingPrice: decimal.NewFromInt(price),
		OnHand:       onHand,
	}
}

func TestAddNewLine(t *testing.T) {
	c := New()
	p := product("Sugar 1kg", 50, 10)

	require.NoError(t, c.Add(p))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, p.ID, c.Lines[0].ProductID)
	assert.True(t, c.Lines[0].UnitPrice.Equal(decimal.NewFromInt(50)))
}

func TestAddExistingLineIncrements(t *testing.T) {
	c := New()
	p := product("Sugar 1kg", 50, 10)

	require.NoError(t, c.Add(p))
	require.NoError(t, c.Add(p))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestAddOutOfStock(t *testing.T) {
	c := New()
	p := product("Sugar 1kg", 50, 0)

	err := c.Add(p)
	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Empty(t, c.Lines, "failed add must not mutate the cart")
}

func TestSetQuantityExceedsStock(t *testing.T) {
	c := New()
	p := product("Bread", 20, 5)
	require.NoError(t, c.Add(p))
	require.NoError(t, c.SetQuantity(p.ID, 4)) // now 5, at the ceiling

	err := c.SetQuantity(p.ID, 1)
	require.ErrorIs(t, err, ErrExceedsStock)
	assert.Equal(t, 5, c.Lines[0].Quantity, "rejected increment must leave the line unchanged")
}

func TestSetQuantityFloor(t *testing.T) {
	c := New()
	p := product("Bread", 20, 5)
	require.NoError(t, c.Add(p))

	err := c.SetQuantity(p.ID, -1)
	require.ErrorIs(t, err, ErrMinQuantity)
	assert.Equal(t, 1, c.Lines[0].Quantity, "line survives; removal must be explicit")
}

func TestSetQuantityUnknownProduct(t *testing.T) {
	c := New()
	require.ErrorIs(t, c.SetQuantity(uuid.New(), 1), ErrLineNotFound)
}

func TestRemove(t *testing.T) {
	c := New()
	p1 := product("Sugar 1kg", 50, 10)
	p2 := product("Bread", 20, 5)
	require.NoError(t, c.Add(p1))
	require.NoError(t, c.Add(p2))

	require.NoError(t, c.Remove(p1.ID))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, p2.ID, c.Lines[0].ProductID)

	require.ErrorIs(t, c.Remove(p1.ID), ErrLineNotFound)
}

func TestTotalIsSumOfLineSubtotals(t *testing.T) {
	c := New()
	p1 := product("Sugar 1kg", 50, 10)
	p2 := product("Cooking Oil", 120, 4)
	require.NoError(t, c.Add(p1))
	require.NoError(t, c.SetQuantity(p1.ID, 2)) // 3 x 50
	require.NoError(t, c.Add(p2))               // 1 x 120

	want := decimal.Zero
	for _, l := range c.Lines {
		want = want.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	assert.True(t, c.Total().Equal(want))
	assert.True(t, c.Total().Equal(decimal.NewFromInt(270)))
}

func TestTotalEmptyCart(t *testing.T) {
	c := New()
	assert.True(t, c.Total().IsZero())
	assert.True(t, c.Empty())
}

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	c := s.Open()

	got, err := s.Get(c.ID)
	require.NoError(t, err)
	assert.Same(t, c, got)

	s.Discard(c.ID)
	_, err = s.Get(c.ID)
	require.ErrorIs(t, err, ErrCartNotFound)
}
