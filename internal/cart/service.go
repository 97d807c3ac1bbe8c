package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRate is the fixed sales tax applied at checkout.
var TaxRate = decimal.RequireFromString("0.12")

var oneHundred = decimal.NewFromInt(100)

// round2 rounds to 2 decimal places, half up. Applied at every money
// computation boundary: subtotal, discount, tax, total.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Add rings up a line item. The first item of a session assigns the draft
// identifier used by the pending-order reflection.
func (c *Cart) Add(item LineItem) error {
	if item.ProductID == "" {
		return ErrMissingProduct
	}
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if item.BasePrice.IsNegative() {
		return ErrNegativePrice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draftID == "" {
		c.draftID = uuid.NewString()
	}
	c.items = append(c.items, item)
	return nil
}

// UpdateQuantity sets the quantity of the line at index. A quantity of
// zero or less removes the line, mirroring how the till's minus button
// behaves on the last unit.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.items) {
		return ErrLineNotFound
	}
	if quantity <= 0 {
		c.items = append(c.items[:index], c.items[index+1:]...)
		c.resetIfEmpty()
		return nil
	}
	c.items[index].Quantity = quantity
	return nil
}

func (c *Cart) Remove(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.items) {
		return ErrLineNotFound
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	c.resetIfEmpty()
	return nil
}

// Clear drops every line and the discount selection, ending the cart
// session. The next Add starts a fresh draft identifier.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.discount = Discount{}
	c.draftID = ""
}

func (c *Cart) resetIfEmpty() {
	if len(c.items) == 0 {
		c.draftID = ""
		c.discount = Discount{}
	}
}

func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

func (c *Cart) SetDiscount(d Discount) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discount = d
}

func (c *Cart) Discount() Discount {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.discount
}

// DraftID is the random per-session identifier of the pending reflection.
// Empty while the cart is empty. Never sent to the platform.
func (c *Cart) DraftID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftID
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Totals computes subtotal, discount, tax and total for the current lines.
//
//	subtotal = Σ(unitPrice × qty)
//	discount = round2(subtotal × pct / 100)
//	tax      = round2(subtotal × 0.12)
//	total    = round2(subtotal + tax − discount)
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalsOf(c.items, c.discount)
}

func totalsOf(items []LineItem, d Discount) Totals {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.LineTotal())
	}
	subtotal = round2(subtotal)

	discount := round2(subtotal.Mul(d.Pct).Div(oneHundred))
	tax := round2(subtotal.Mul(TaxRate))
	total := round2(subtotal.Add(tax).Sub(discount))

	return Totals{Subtotal: subtotal, Discount: discount, Tax: tax, Total: total}
}
