package cart

import "errors"

var (
	// -- Validation & Input --
	ErrMissingProduct  = errors.New("line item has no product reference")
	ErrInvalidQuantity = errors.New("invalid line quantity")
	ErrNegativePrice   = errors.New("negative price")

	// -- Resource State --
	ErrLineNotFound = errors.New("cart line not found")
	ErrCartEmpty    = errors.New("cart is empty")
)
