package platform

import (
	"github.com/shopspring/decimal"

	"tillpoint/internal/orders"
)

type Role string

const (
	RoleCashier    Role = "CASHIER"
	RoleManager    Role = "MANAGER"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// User is the platform account entity returned by the auth endpoint.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     Role   `json:"role"`
}

// LoginResult is the auth endpoint response: a bearer token plus the
// authenticated account.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type CreateOrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      *orders.Size    `json:"size,omitempty"`
	AddOns    []orders.AddOn  `json:"addons,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// CreateOrderPayment carries the chosen payment method's result. Details
// holds the raw method result object for audit; its shape varies by method.
type CreateOrderPayment struct {
	Method    string          `json:"method"`
	Tendered  decimal.Decimal `json:"tendered"`
	Total     decimal.Decimal `json:"total"`
	Reference string          `json:"reference,omitempty"`
	Details   map[string]any  `json:"details,omitempty"`
}

type CreateOrderRequest struct {
	Items        []CreateOrderItem  `json:"items"`
	DiscountPct  decimal.Decimal    `json:"discountPct"`
	DiscountType string             `json:"discountType,omitempty"`
	Coupon       string             `json:"coupon,omitempty"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Discount     decimal.Decimal    `json:"discount"`
	Tax          decimal.Decimal    `json:"tax"`
	Total        decimal.Decimal    `json:"total"`
	Payment      CreateOrderPayment `json:"payment"`
}

type VoidItemRef struct {
	OrderItemID string `json:"orderItemId"`
}

// VoidRequest is the body of POST /orders/{id}/void. Notes is always
// serialized, null included, to match the platform contract.
type VoidRequest struct {
	Type   orders.VoidType `json:"type"`
	Reason string          `json:"reason"`
	Notes  *string         `json:"notes"`
	Items  []VoidItemRef   `json:"items,omitempty"`
}

type ListOrdersQuery struct {
	CashierID string
	Status    orders.Status
}

type ListVoidLogsQuery struct {
	OrderID   string
	CashierID string
}
