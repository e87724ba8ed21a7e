// Package listing computes the visible product view from the catalog:
// category and text filtering, stable sorting and pagination. Everything here
// is a pure function of its inputs.
package listing

import (
	"sort"
	"strings"

	"makwell-storefront/internal/catalog"

	"golang.org/x/text/cases"
)

// Apply filters, sorts and pages products. The page is clamped to the valid range.
func Apply(products []catalog.Product, q Query) Result {
	size := normalizePageSize(q.PageSize)

	filtered := Filter(products, q.Text, q.Category)
	Sort(filtered, q.Sort)

	total := len(filtered)
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	items := make([]catalog.Product, end-start)
	copy(items, filtered[start:end])

	return Result{
		Items:    items,
		Total:    total,
		Page:     page,
		Pages:    pages,
		PageSize: size,
	}
}

// Filter returns a new slice with the products matching category and text,
// in catalog order. Category match is exact and case-sensitive; text match is
// a case-folded substring search.
func Filter(products []catalog.Product, text, category string) []catalog.Product {
	// cases.Caser keeps state, so each call gets its own.
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(text))
	allCats := isAllCategories(category)
	category = strings.TrimSpace(category)

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if !allCats && p.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(haystack(p)), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func haystack(p catalog.Product) string {
	parts := make([]string, 0, 4+len(p.Tags)+len(p.Specs)+len(p.Badges))
	parts = append(parts, p.Name, p.Category)
	parts = append(parts, p.Tags...)
	parts = append(parts, p.Specs...)
	parts = append(parts, p.Badges...)
	parts = append(parts, p.Description)
	return strings.Join(parts, " ")
}

// Sort orders products in place. The sort is stable, so equal keys keep
// catalog order. Products without a price go last for both price orders.
func Sort(products []catalog.Product, key SortKey) {
	var less func(a, b catalog.Product) bool

	switch key {
	case SortPriceAsc:
		less = func(a, b catalog.Product) bool {
			if a.HasPrice() != b.HasPrice() {
				return a.HasPrice()
			}
			return a.PriceValue() < b.PriceValue()
		}
	case SortPriceDesc:
		less = func(a, b catalog.Product) bool {
			if a.HasPrice() != b.HasPrice() {
				return a.HasPrice()
			}
			return a.PriceValue() > b.PriceValue()
		}
	case SortRating:
		less = func(a, b catalog.Product) bool { return a.Rating > b.Rating }
	case SortName:
		fold := cases.Fold()
		less = func(a, b catalog.Product) bool {
			return fold.String(a.DisplayName()) < fold.String(b.DisplayName())
		}
	default:
		less = func(a, b catalog.Product) bool { return a.Popularity > b.Popularity }
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}
