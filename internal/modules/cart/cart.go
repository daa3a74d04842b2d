package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbewe/duka-backend/internal/modules/inventory"
)

var (
	// ErrOutOfStock is returned when adding a product with nothing on hand.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrExceedsStock is returned when an increment would push a line past
	// the product's on-hand quantity.
	ErrExceedsStock = errors.New("quantity exceeds available stock")
	// ErrLineNotFound is returned when the cart holds no line for the product.
	ErrLineNotFound = errors.New("product not in cart")
	// ErrMinQuantity is returned when a decrement would drop a line to zero
	// or below; removal must be explicit.
	ErrMinQuantity = errors.New("quantity cannot drop below one; remove the line instead")
)

// Line is one product in a cart. Price and stock ceiling are snapshotted at
// add time; the commit engine re-validates the ceiling against live stock.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	OnHand    int             `json:"on_hand"` // snapshot at add time
	Quantity  int             `json:"quantity"`
}

// Subtotal is unit price times quantity.
func (l *Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart accumulates lines for one checkout session. It lives only in memory
// and touches no persisted state until the sale commit.
type Cart struct {
	ID        uuid.UUID `json:"id"`
	Lines     []*Line   `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{ID: uuid.New(), CreatedAt: time.Now()}
}

// Add puts one unit of the product in the cart. A product already present
// gets its quantity bumped by one; the stock ceiling is only enforced on
// explicit increments and at commit.
func (c *Cart) Add(p *inventory.Product) error {
	if p.OnHand <= 0 {
		return ErrOutOfStock
	}
	if line := c.find(p.ID); line != nil {
		line.Quantity++
		return nil
	}
	c.Lines = append(c.Lines, &Line{
		ProductID: p.ID,
		Name:      p.Name,
		Unit:      p.Unit,
		UnitPrice: p.SellingPrice,
		OnHand:    p.OnHand,
		Quantity:  1,
	})
	return nil
}

// SetQuantity adjusts a line's quantity by delta. Rejections leave the line
// untouched.
func (c *Cart) SetQuantity(productID uuid.UUID, delta int) error {
	line := c.find(productID)
	if line == nil {
		return ErrLineNotFound
	}
	next := line.Quantity + delta
	if delta > 0 && next > line.OnHand {
		return ErrExceedsStock
	}
	if next <= 0 {
		return ErrMinQuantity
	}
	line.Quantity = next
	return nil
}

// Remove deletes the product's line unconditionally.
func (c *Cart) Remove(productID uuid.UUID) error {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Total sums unit price times quantity over all lines. Recomputed on every
// call, never cached.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.Lines) == 0 }

func (c *Cart) find(productID uuid.UUID) *Line {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line
		}
	}
	return nil
}
