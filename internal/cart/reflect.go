package cart

import (
	"time"

	"tillpoint/internal/orders"
)

// Reflect derives the draft "pending" order that order-monitoring views
// show while a basket is in progress. It is recomputed from the cart on
// every call and never stored, so it cannot drift from the cart, and its
// draft identifier never reaches the platform. Returns nil for an empty
// cart.
func (c *Cart) Reflect(cashierID string) *orders.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return nil
	}

	items := make([]orders.OrderItem, 0, len(c.items))
	for _, li := range c.items {
		items = append(items, orders.OrderItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice(),
			Size:      li.Size,
			AddOns:    li.AddOns,
			Notes:     li.Notes,
		})
	}

	t := totalsOf(c.items, c.discount)

	return &orders.Order{
		ID:          c.draftID,
		CashierID:   cashierID,
		Items:       items,
		Subtotal:    t.Subtotal,
		DiscountPct: c.discount.Pct,
		Discount:    t.Discount,
		Coupon:      c.discount.Coupon,
		Tax:         t.Tax,
		Total:       t.Total,
		Status:      orders.StatusInProgress,
		CreatedAt:   time.Now(),
	}
}
