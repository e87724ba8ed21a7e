package listing

import (
	"strings"

	"makwell-storefront/internal/catalog"
)

type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortPriceAsc   SortKey = "priceAsc"
	SortPriceDesc  SortKey = "priceDesc"
	SortRating     SortKey = "rating"
	SortName       SortKey = "name"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

var sortAliases = map[string]SortKey{
	"popularity":     SortPopularity,
	"popular":        SortPopularity,
	"popularitydesc": SortPopularity,
	"priceasc":       SortPriceAsc,
	"price-asc":      SortPriceAsc,
	"pricedesc":      SortPriceDesc,
	"price-desc":     SortPriceDesc,
	"rating":         SortRating,
	"ratingdesc":     SortRating,
	"name":           SortName,
	"nameasc":        SortName,
}

// ParseSortKey maps user input to a SortKey; unknown values mean popularity.
func ParseSortKey(s string) SortKey {
	if key, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return key
	}
	return SortPopularity
}

func SortKeys() []SortKey {
	return []SortKey{SortPopularity, SortPriceAsc, SortPriceDesc, SortRating, SortName}
}

// Query is the full input of Apply.
type Query struct {
	Text     string
	Category string
	Sort     SortKey
	Page     int
	PageSize int
}

type Result struct {
	Items    []catalog.Product `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Pages    int               `json:"pages"`
	PageSize int               `json:"pageSize"`
}

func normalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// isAllCategories reports whether category disables category filtering.
func isAllCategories(category string) bool {
	c := strings.TrimSpace(category)
	return c == "" || strings.EqualFold(c, catalog.AllCategories)
}
