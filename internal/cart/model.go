package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"tillpoint/internal/orders"
)

// LineItem is one draft line on the till. Prices are frozen at the moment
// the item is rung up.
type LineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"basePrice"`
	Quantity  int             `json:"quantity"`
	Size      *orders.Size    `json:"size,omitempty"`
	AddOns    []orders.AddOn  `json:"addons,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// UnitPrice is the base price plus the size delta plus every add-on.
func (li LineItem) UnitPrice() decimal.Decimal {
	price := li.BasePrice
	if li.Size != nil {
		price = price.Add(li.Size.PriceDelta)
	}
	for _, a := range li.AddOns {
		price = price.Add(a.Price)
	}
	return price
}

func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type Discount struct {
	Pct    decimal.Decimal `json:"pct"`
	Type   string          `json:"type,omitempty"`
	Coupon string          `json:"coupon,omitempty"`
}

// Cart accumulates draft line items for the active till session. It exists
// between the first item rung up and checkout finalize (or an explicit
// clear) and is owned by exactly one session.
type Cart struct {
	mu       sync.Mutex
	items    []LineItem
	discount Discount
	draftID  string
}

func New() *Cart {
	return &Cart{}
}
