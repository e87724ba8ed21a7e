package listing

import (
	"strings"

	"makwell-storefront/internal/catalog"
)

// ViewState is what the shopper currently looks at. It is a value: every
// transition returns a new state and nothing here is persisted.
type ViewState struct {
	Query    string  `json:"query"`
	Category string  `json:"category"`
	Sort     SortKey `json:"sort"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
}

func NewViewState(pageSize int) ViewState {
	return ViewState{
		Category: catalog.AllCategories,
		Sort:     SortPopularity,
		Page:     1,
		PageSize: normalizePageSize(pageSize),
	}
}

// WithQuery, WithCategory and WithSort change the result set, so they go back to page 1.
func (v ViewState) WithQuery(q string) ViewState {
	v.Query = strings.TrimSpace(q)
	v.Page = 1
	return v
}

func (v ViewState) WithCategory(c string) ViewState {
	if isAllCategories(c) {
		c = catalog.AllCategories
	}
	v.Category = strings.TrimSpace(c)
	v.Page = 1
	return v
}

func (v ViewState) WithSort(key SortKey) ViewState {
	v.Sort = key
	v.Page = 1
	return v
}

// WithPage keeps the filters. Clamping happens in Apply.
func (v ViewState) WithPage(page int) ViewState {
	v.Page = page
	return v
}

func (v ViewState) ToQuery() Query {
	return Query{
		Text:     v.Query,
		Category: v.Category,
		Sort:     v.Sort,
		Page:     v.Page,
		PageSize: v.PageSize,
	}
}

// Compute applies the view to products and returns the state with its page
// clamped to what Apply actually served.
func (v ViewState) Compute(products []catalog.Product) (ViewState, Result) {
	res := Apply(products, v.ToQuery())
	v.Page = res.Page
	v.PageSize = res.PageSize
	return v, res
}
