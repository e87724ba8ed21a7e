package checkout

import "errors"

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrMissingSink = errors.New("checkout sink not configured")
)
