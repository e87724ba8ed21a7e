package listing

import (
	"testing"

	"makwell-storefront/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func TestViewState_Transitions(t *testing.T) {
	v := NewViewState(0)
	assert.Equal(t, catalog.AllCategories, v.Category)
	assert.Equal(t, SortPopularity, v.Sort)
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, DefaultPageSize, v.PageSize)

	v = v.WithPage(3)
	assert.Equal(t, 3, v.Page)

	t.Run("QueryResetsPage", func(t *testing.T) {
		next := v.WithQuery("  fan ")
		assert.Equal(t, "fan", next.Query)
		assert.Equal(t, 1, next.Page)
	})

	t.Run("CategoryResetsPage", func(t *testing.T) {
		next := v.WithCategory("Fans")
		assert.Equal(t, "Fans", next.Category)
		assert.Equal(t, 1, next.Page)

		assert.Equal(t, catalog.AllCategories, v.WithCategory("ALL").Category)
		assert.Equal(t, catalog.AllCategories, v.WithCategory("").Category)
	})

	t.Run("SortResetsPage", func(t *testing.T) {
		next := v.WithSort(SortRating)
		assert.Equal(t, SortRating, next.Sort)
		assert.Equal(t, 1, next.Page)
	})

	t.Run("PageKeepsFilters", func(t *testing.T) {
		filtered := v.WithQuery("tv").WithCategory("Televisions").WithSort(SortPriceAsc)
		next := filtered.WithPage(2)
		assert.Equal(t, "tv", next.Query)
		assert.Equal(t, "Televisions", next.Category)
		assert.Equal(t, SortPriceAsc, next.Sort)
		assert.Equal(t, 2, next.Page)
	})

	t.Run("ValueSemantics", func(t *testing.T) {
		_ = v.WithQuery("changed")
		assert.Equal(t, "", v.Query)
	})
}

func TestViewState_Compute(t *testing.T) {
	products := sampleCatalog()

	v := NewViewState(2).WithPage(10)
	clamped, res := v.Compute(products)

	assert.Equal(t, 3, clamped.Page)
	assert.Equal(t, res.Page, clamped.Page)
	assert.Equal(t, 5, res.Total)
}

func TestBuildFacets(t *testing.T) {
	f := BuildFacets(sampleCatalog())

	assert.Equal(t, []CategoryCount{
		{Name: "Televisions", Count: 2},
		{Name: "Fans", Count: 2},
		{Name: "Irons", Count: 1},
	}, f.Categories)
	assert.Equal(t, 4, f.InStock)
	assert.Equal(t, 1, f.OutOfStock)
	assert.Equal(t, 4, f.Priced)
	assert.Equal(t, &PriceRange{Min: 1499, Max: 24999}, f.PriceRange)

	empty := BuildFacets(nil)
	assert.Empty(t, empty.Categories)
	assert.Nil(t, empty.PriceRange)
}
