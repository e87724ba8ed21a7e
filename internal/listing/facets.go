package listing

import (
	"makwell-storefront/internal/catalog"
)

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Facets summarises the catalog for filter controls.
type Facets struct {
	Categories []CategoryCount `json:"categories"`
	InStock    int             `json:"inStock"`
	OutOfStock int             `json:"outOfStock"`
	Priced     int             `json:"priced"`
	PriceRange *PriceRange     `json:"priceRange,omitempty"`
}

func BuildFacets(products []catalog.Product) Facets {
	f := Facets{Categories: []CategoryCount{}}
	index := make(map[string]int)

	for _, p := range products {
		if p.Category != "" {
			i, ok := index[p.Category]
			if !ok {
				i = len(f.Categories)
				index[p.Category] = i
				f.Categories = append(f.Categories, CategoryCount{Name: p.Category})
			}
			f.Categories[i].Count++
		}

		if p.Purchasable() {
			f.InStock++
		} else {
			f.OutOfStock++
		}

		if !p.HasPrice() {
			continue
		}
		f.Priced++
		price := p.PriceValue()
		if f.PriceRange == nil {
			f.PriceRange = &PriceRange{Min: price, Max: price}
			continue
		}
		if price < f.PriceRange.Min {
			f.PriceRange.Min = price
		}
		if price > f.PriceRange.Max {
			f.PriceRange.Max = price
		}
	}

	return f
}
