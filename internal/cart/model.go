package cart

import (
	"sort"

	"makwell-storefront/internal/catalog"

	"github.com/shopspring/decimal"
)

// Ledger maps product id to a positive quantity. A quantity that would drop
// to zero or below removes the entry instead.
type Ledger struct {
	items map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{items: make(map[string]int)}
}

// Line is one ledger entry as it appears in persisted and checkout payloads.
type Line struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"qty"`
}

// Add increments id by one, creating the entry at 1.
func (l *Ledger) Add(id string) int {
	l.items[id]++
	return l.items[id]
}

// Set stores n for id, or removes id when n <= 0.
func (l *Ledger) Set(id string, n int) {
	if n <= 0 {
		delete(l.items, id)
		return
	}
	l.items[id] = n
}

func (l *Ledger) Remove(id string) {
	delete(l.items, id)
}

func (l *Ledger) Clear() {
	l.items = make(map[string]int)
}

func (l *Ledger) Quantity(id string) int {
	return l.items[id]
}

func (l *Ledger) Has(id string) bool {
	_, ok := l.items[id]
	return ok
}

func (l *Ledger) Len() int {
	return len(l.items)
}

func (l *Ledger) Empty() bool {
	return len(l.items) == 0
}

// Count is the total number of units across all entries.
func (l *Ledger) Count() int {
	n := 0
	for _, q := range l.items {
		n += q
	}
	return n
}

// Lines returns the entries sorted by product id.
func (l *Ledger) Lines() []Line {
	lines := make([]Line, 0, len(l.items))
	for id, q := range l.items {
		lines = append(lines, Line{ProductID: id, Quantity: q})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID < lines[j].ProductID
	})
	return lines
}

func (l *Ledger) Clone() *Ledger {
	c := &Ledger{items: make(map[string]int, len(l.items))}
	for id, q := range l.items {
		c.items[id] = q
	}
	return c
}

// Lookup resolves product ids against the catalog.
type Lookup interface {
	ByID(id string) (catalog.Product, bool)
}

// Subtotal sums price * quantity. Unknown products and products without a
// price contribute nothing.
func (l *Ledger) Subtotal(products Lookup) decimal.Decimal {
	total := decimal.Zero
	for id, q := range l.items {
		p, ok := products.ByID(id)
		if !ok || !p.HasPrice() {
			continue
		}
		total = total.Add(decimal.NewFromFloat(p.PriceValue()).Mul(decimal.NewFromInt(int64(q))))
	}
	return total
}
