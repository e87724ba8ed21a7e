package listing

import (
	"fmt"
	"strings"
	"testing"

	"makwell-storefront/internal/catalog"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }
func stock(n int) *int         { return &n }

func ids(products []catalog.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func sampleCatalog() []catalog.Product {
	return []catalog.Product{
		{ID: "tv-32", Name: "MK32 Smart TV", Category: "Televisions", Price: price(14999), Rating: 4.2, Popularity: 80, Tags: []string{"Smart", "HD"}, Specs: []string{"HDMI x2"}},
		{ID: "fan-1", Name: "Breeze Ceiling Fan", Category: "Fans", Price: price(1499), Rating: 4.7, Popularity: 95, Tags: []string{"BLDC"}},
		{ID: "iron-1", Name: "Steam Iron", Category: "Irons", Rating: 3.9, Popularity: 40, Badges: []string{"New"}, Stock: stock(0)},
		{ID: "tv-43", Name: "MK43 4K TV", Category: "Televisions", Price: price(24999), Rating: 4.6, Popularity: 80, Description: "Dolby audio"},
		{ID: "fan-2", Name: "auto Pedestal Fan", Category: "Fans", Price: price(2199), Rating: 4.2, Popularity: 60},
	}
}

func TestApply_SpecScenario(t *testing.T) {
	products := []catalog.Product{
		{ID: "1", Category: "TV", Price: price(10000)},
		{ID: "2", Category: "Fan", Price: price(500)},
	}

	res := Apply(products, Query{Category: "all", Sort: SortPriceAsc, Page: 1})

	assert.Equal(t, []string{"2", "1"}, ids(res.Items))
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Pages)
}

func TestFilter(t *testing.T) {
	products := sampleCatalog()

	tests := []struct {
		name     string
		text     string
		category string
		want     []string
	}{
		{"All", "", "all", []string{"tv-32", "fan-1", "iron-1", "tv-43", "fan-2"}},
		{"AllSentinelCaseInsensitive", "", "All", []string{"tv-32", "fan-1", "iron-1", "tv-43", "fan-2"}},
		{"EmptyCategory", "", "", []string{"tv-32", "fan-1", "iron-1", "tv-43", "fan-2"}},
		{"Category", "", "Fans", []string{"fan-1", "fan-2"}},
		{"CategoryIsCaseSensitive", "", "fans", []string{}},
		{"TextInName", "iron", "all", []string{"iron-1"}},
		{"TextInTags", "bldc", "all", []string{"fan-1"}},
		{"TextInSpecs", "hdmi", "all", []string{"tv-32"}},
		{"TextInBadges", "NEW", "all", []string{"iron-1"}},
		{"TextInDescription", "dolby", "all", []string{"tv-43"}},
		{"TextInCategory", "televis", "all", []string{"tv-32", "tv-43"}},
		{"TextAndCategory", "fan", "Fans", []string{"fan-1", "fan-2"}},
		{"TextTrimmed", "  steam ", "all", []string{"iron-1"}},
		{"NoMatch", "blender", "all", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(products, tc.text, tc.category))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_UnicodeFolding(t *testing.T) {
	products := []catalog.Product{{ID: "1", Name: "STRASSE Kühlschrank"}}
	assert.Len(t, Filter(products, "straße", "all"), 1)
	assert.Len(t, Filter(products, "KÜHL", "all"), 1)
}

func TestSort(t *testing.T) {
	tests := []struct {
		key  SortKey
		want []string
	}{
		// popularity ties (tv-32, tv-43) keep catalog order
		{SortPopularity, []string{"fan-1", "tv-32", "tv-43", "fan-2", "iron-1"}},
		{SortPriceAsc, []string{"fan-1", "fan-2", "tv-32", "tv-43", "iron-1"}},
		{SortPriceDesc, []string{"tv-43", "tv-32", "fan-2", "fan-1", "iron-1"}},
		{SortRating, []string{"fan-1", "tv-43", "tv-32", "fan-2", "iron-1"}},
		{SortName, []string{"fan-2", "fan-1", "tv-32", "tv-43", "iron-1"}},
		{SortKey("bogus"), []string{"fan-1", "tv-32", "tv-43", "fan-2", "iron-1"}},
	}

	for _, tc := range tests {
		t.Run(string(tc.key), func(t *testing.T) {
			products := sampleCatalog()
			Sort(products, tc.key)
			if diff := cmp.Diff(tc.want, ids(products)); diff != "" {
				t.Errorf("Sort(%s) mismatch (-want +got):\n%s", tc.key, diff)
			}
		})
	}
}

func TestSort_PriceOrdersAreReversed(t *testing.T) {
	var products []catalog.Product
	for i := 0; i < 20; i++ {
		products = append(products, catalog.Product{ID: fmt.Sprint(i), Price: price(float64((i * 37) % 101))})
	}

	asc := Apply(products, Query{Sort: SortPriceAsc, PageSize: 100}).Items
	desc := Apply(products, Query{Sort: SortPriceDesc, PageSize: 100}).Items

	reversed := make([]string, 0, len(desc))
	for i := len(desc) - 1; i >= 0; i-- {
		reversed = append(reversed, desc[i].ID)
	}
	assert.Equal(t, ids(asc), reversed)
}

func TestApply_Pagination(t *testing.T) {
	var products []catalog.Product
	for i := 0; i < 23; i++ {
		products = append(products, catalog.Product{ID: fmt.Sprintf("p%02d", i), Category: []string{"A", "B"}[i%2], Popularity: float64(i % 4)})
	}

	q := Query{Category: "A", Sort: SortPopularity, PageSize: 5}
	first := Apply(products, q)
	require.Equal(t, 12, first.Total)
	require.Equal(t, 3, first.Pages)

	var all []string
	for page := 1; page <= first.Pages; page++ {
		q.Page = page
		res := Apply(products, q)
		assert.Equal(t, page, res.Page)
		all = append(all, ids(res.Items)...)
	}

	assert.Equal(t, ids(Apply(products, Query{Category: "A", Sort: SortPopularity, PageSize: 100}).Items), all)

	seen := map[string]bool{}
	for _, id := range all {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
}

func TestApply_PageClamping(t *testing.T) {
	products := sampleCatalog()

	res := Apply(products, Query{Page: 99, PageSize: 2})
	assert.Equal(t, 3, res.Page)
	assert.Len(t, res.Items, 1)

	res = Apply(products, Query{Page: -3, PageSize: 2})
	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Items, 2)

	res = Apply(nil, Query{Page: 4})
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Items)

	assert.Equal(t, DefaultPageSize, Apply(products, Query{}).PageSize)
	assert.Equal(t, MaxPageSize, Apply(products, Query{PageSize: 1000}).PageSize)
}

func TestApply_TotalNeverExceedsCatalogAndItemsMatch(t *testing.T) {
	products := sampleCatalog()

	for _, text := range []string{"", "fan", "tv", "x", "e"} {
		for _, cat := range []string{"all", "Fans", "Televisions", "Irons", "Nope"} {
			res := Apply(products, Query{Text: text, Category: cat, PageSize: 100})
			assert.LessOrEqual(t, res.Total, len(products))
			for _, p := range res.Items {
				if cat != "all" {
					assert.Equal(t, cat, p.Category)
				}
				assert.Contains(t, strings.ToLower(haystack(p)), text)
			}
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := sampleCatalog()
	before := ids(products)

	_ = Apply(products, Query{Sort: SortPriceDesc})

	assert.Equal(t, before, ids(products))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortKey("priceAsc"))
	assert.Equal(t, SortPriceAsc, ParseSortKey("PRICE-ASC"))
	assert.Equal(t, SortPriceDesc, ParseSortKey("pricedesc"))
	assert.Equal(t, SortRating, ParseSortKey(" rating "))
	assert.Equal(t, SortName, ParseSortKey("name"))
	assert.Equal(t, SortPopularity, ParseSortKey(""))
	assert.Equal(t, SortPopularity, ParseSortKey("cheapest"))
	assert.Len(t, SortKeys(), 5)
}
