package checkout

import (
	"time"

	"makwell-storefront/internal/cart"
)

// Build serialises the ledger. An empty ledger is rejected and no payload
// is constructed.
func Build(ledger *cart.Ledger, brand, currency string, now time.Time) (Payload, error) {
	if ledger == nil || ledger.Empty() {
		return Payload{}, ErrEmptyCart
	}

	lines := ledger.Lines()
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, Item{ID: l.ProductID, Qty: l.Quantity})
	}

	return Payload{
		Brand:     brand,
		Currency:  currency,
		Items:     items,
		Timestamp: formatTimestamp(now),
	}, nil
}
