package inventory

import "errors"

var (
	// ErrInvalidType means add received an item that is not non-empty text
	// or a quantity that is not an integer. The store is left unchanged.
	ErrInvalidType = errors.New("invalid item or quantity type")

	// ErrMissingItem means remove targeted an item that is not in stock.
	ErrMissingItem = errors.New("item not in stock")

	// ErrNonNumericQuantity means remove received a quantity it cannot subtract.
	ErrNonNumericQuantity = errors.New("quantity is not numeric")
)
