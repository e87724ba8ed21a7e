package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidProductID = errors.New("invalid product id")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product is out of stock")

	// -- Persistence --
	ErrCorruptLedger = errors.New("persisted cart is corrupt")
)

// LedgerKey is the namespaced persistence key of the cart ledger.
const LedgerKey = "mw_cart"
