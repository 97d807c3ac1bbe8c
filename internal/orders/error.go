package orders

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyVoidLog  = errors.New("void log has no identifier")
)
