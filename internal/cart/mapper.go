package cart

import (
	"makwell-storefront/internal/catalog"

	"github.com/shopspring/decimal"
)

// LineView is a cart line joined with its catalog product for display.
type LineView struct {
	ProductID  string          `json:"id"`
	Name       string          `json:"name"`
	Image      string          `json:"image,omitempty"`
	Quantity   int             `json:"qty"`
	UnitPrice  *float64        `json:"unitPrice"`
	PriceLabel string          `json:"priceLabel,omitempty"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
	Available  bool            `json:"available"`
}

type Summary struct {
	Lines    []LineView      `json:"lines"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Summarize maps the ledger to display lines. Products missing from the
// catalog (not loaded yet, or removed) are still listed, unavailable and unpriced.
func Summarize(ledger *Ledger, products Lookup) Summary {
	lines := ledger.Lines()
	out := Summary{
		Lines:    make([]LineView, 0, len(lines)),
		Count:    ledger.Count(),
		Subtotal: ledger.Subtotal(products),
	}

	for _, l := range lines {
		view := LineView{
			ProductID:  l.ProductID,
			Name:       catalog.UntitledProduct,
			Quantity:   l.Quantity,
			PriceLabel: catalog.ContactForPrice,
			LineTotal:  decimal.Zero,
		}

		if p, ok := products.ByID(l.ProductID); ok {
			view.Name = p.DisplayName()
			view.Image = p.Image
			view.Available = p.Purchasable()
			if p.HasPrice() {
				price := p.PriceValue()
				view.UnitPrice = &price
				view.PriceLabel = ""
				view.LineTotal = decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(l.Quantity)))
			}
		}

		out.Lines = append(out.Lines, view)
	}

	return out
}
