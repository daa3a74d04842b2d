// Package receipt renders committed sales as plain-text receipts for a
// 32-column thermal printer. Rendering is pure: the same sale always
// produces byte-identical output, so a receipt can be reprinted at will.
package receipt

import (
	"fmt"
	"strings"

	"github.com/mbewe/duka-backend/internal/modules/sales"
)

const width = 32

// Printer consumes a rendered receipt. Fire-and-forget: the engine never
// waits on or inspects the outcome of printing.
type Printer interface {
	Print(text string)
}

// Emitter renders receipts and hands them to a printer.
type Emitter struct {
	shopName string
	printer  Printer
}

// NewEmitter creates an emitter for the named shop.
func NewEmitter(shopName string, printer Printer) *Emitter {
	if shopName == "" {
		shopName = "DUKA"
	}
	return &Emitter{shopName: shopName, printer: printer}
}

// Emit renders the sale and sends the text to the printer.
func (e *Emitter) Emit(s *sales.Sale) string {
	text := e.Render(s)
	if e.printer != nil {
		e.printer.Print(text)
	}
	return text
}

// Render produces the receipt text. No side effects.
func (e *Emitter) Render(s *sales.Sale) string {
	var b strings.Builder
	rule := strings.Repeat("-", width)

	b.WriteString(center(e.shopName) + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(s.CreatedAt.Format("02 Jan 2006 15:04") + "\n")
	b.WriteString("Sale " + shortID(s) + "\n")
	b.WriteString(rule + "\n")

	for _, l := range s.Lines {
		b.WriteString(l.Name + "\n")
		qty := fmt.Sprintf("  %d %s x %s", l.Quantity, l.Unit, l.UnitPrice.String())
		b.WriteString(row(qty, l.Subtotal.String()) + "\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString(row("TOTAL", s.Total.String()) + "\n")
	b.WriteString(row("PAID BY", string(s.PaymentMethod)) + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(center("Thank you, come again!") + "\n")
	return b.String()
}

func shortID(s *sales.Sale) string {
	id := s.ID.String()
	return strings.ToUpper(id[:8])
}

// row left-aligns label and right-aligns value on one line, overflowing
// rather than truncating amounts.
func row(label, value string) string {
	pad := width - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	return label + strings.Repeat(" ", pad) + value
}

func center(s string) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", (width-len(s))/2) + s
}
