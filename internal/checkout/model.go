package checkout

import (
	"github.com/shopspring/decimal"
)

// Method is the till-facing payment method label.
type Method string

const (
	MethodCash Method = "Cash"
	MethodCard Method = "Card"
	MethodQRS  Method = "QRS"
)

// platform payment method enum
var methodEnum = map[Method]string{
	MethodCash: "CASH",
	MethodCard: "CARD",
	MethodQRS:  "QR",
}

// NormalizeMethod maps the till label onto the platform enum.
func NormalizeMethod(m Method) (string, error) {
	enum, ok := methodEnum[m]
	if !ok {
		return "", ErrUnknownMethod
	}
	return enum, nil
}

// PaymentResult is the outcome of the chosen payment method. Its shape
// varies by method: cash carries the tendered amount, card an auth code,
// QRS a wallet reference. Details keeps the raw method result for audit.
type PaymentResult struct {
	Method    Method          `json:"method"`
	Tendered  decimal.Decimal `json:"tendered"`
	AuthCode  string          `json:"authCode,omitempty"`
	WalletRef string          `json:"walletRef,omitempty"`
	Details   map[string]any  `json:"details,omitempty"`
}

func (p PaymentResult) reference() string {
	if p.AuthCode != "" {
		return p.AuthCode
	}
	return p.WalletRef
}
