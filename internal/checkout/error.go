package checkout

import "errors"

var (
	ErrUnknownMethod = errors.New("unknown payment method")
	ErrNoCashier     = errors.New("no cashier session")
)
