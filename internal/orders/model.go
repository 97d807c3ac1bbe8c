package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the platform-assigned order status.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusReady      Status = "READY"
	StatusServed     Status = "SERVED"
	StatusPaid       Status = "PAID"
	StatusVoided     Status = "VOIDED"
	StatusRefunded   Status = "REFUNDED"
)

// Label is the till-facing status label.
type Label string

const (
	LabelPending   Label = "pending"
	LabelOngoing   Label = "ongoing"
	LabelComplete  Label = "complete"
	LabelCancelled Label = "cancelled"
)

var statusLabels = map[Status]Label{
	StatusInProgress: LabelPending,
	StatusReady:      LabelOngoing,
	StatusServed:     LabelOngoing,
	StatusPaid:       LabelComplete,
	StatusVoided:     LabelCancelled,
	StatusRefunded:   LabelCancelled,
}

// UILabel maps the platform status onto the label the till renders.
// Unknown statuses fall back to pending rather than failing the view.
func (s Status) UILabel() Label {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return LabelPending
}

type VoidType string

const (
	VoidTransaction VoidType = "TRANSACTION"
	VoidItem        VoidType = "ITEM"
)

type Size struct {
	Label      string          `json:"label"`
	PriceDelta decimal.Decimal `json:"priceDelta"`
}

type AddOn struct {
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

type OrderItem struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"productId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Size       *Size           `json:"size,omitempty"`
	AddOns     []AddOn         `json:"addons,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Voided     bool            `json:"voided"`
	VoidReason *string         `json:"voidReason,omitempty"`
}

type Payment struct {
	Method    string          `json:"method"`
	Tendered  decimal.Decimal `json:"tendered"`
	Total     decimal.Decimal `json:"total"`
	Reference string          `json:"reference,omitempty"`
}

// Order is the authoritative platform entity. Totals are computed
// server-side; the terminal treats them as read-only once returned.
type Order struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	CashierID   string          `json:"cashierId"`
	Items       []OrderItem     `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	Discount    decimal.Decimal `json:"discount"`
	Coupon      string          `json:"coupon,omitempty"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	Status      Status          `json:"status"`
	Payment     *Payment        `json:"payment,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	VoidLogs    []VoidLog       `json:"voidLogs,omitempty"`
}

// FullyVoided reports whether nothing on the order is left to void.
func (o *Order) FullyVoided() bool {
	if o.Status == StatusVoided || o.Status == StatusRefunded {
		return true
	}
	if len(o.Items) == 0 {
		return false
	}
	for _, it := range o.Items {
		if !it.Voided {
			return false
		}
	}
	return true
}

// VoidLog is one authorized void action, append-only on the platform side.
type VoidLog struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"orderId"`
	Type       VoidType  `json:"type"`
	ItemIDs    []string  `json:"itemIds,omitempty"`
	Reason     string    `json:"reason"`
	CashierID  string    `json:"cashierId"`
	ManagerID  string    `json:"managerId"`
	ApprovedAt time.Time `json:"approvedAt"`
}
