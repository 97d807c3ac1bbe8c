package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the flattened view the transaction list renders.
type Transaction struct {
	OrderID   string          `json:"orderId"`
	Code      string          `json:"code"`
	CashierID string          `json:"cashierId"`
	Label     Label           `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Method    string          `json:"method,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func MapTransaction(o *Order) *Transaction {
	tx := &Transaction{
		OrderID:   o.ID,
		Code:      o.Code,
		CashierID: o.CashierID,
		Label:     o.Status.UILabel(),
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
	if o.Payment != nil {
		tx.Method = o.Payment.Method
	}
	return tx
}
