package catalog

import "strings"

const (
	// AllCategories is the category sentinel that disables category filtering.
	AllCategories = "all"

	DefaultRating   = 4.5
	UntitledProduct = "Untitled product"
	ContactForPrice = "Contact for price"
)

// Product is one catalog record. It is never mutated after the catalog loads.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image,omitempty"`
	Description string   `json:"description,omitempty"`
	Size        string   `json:"size,omitempty"`
	Tags        []string `json:"tags"`
	Specs       []string `json:"specs"`
	Badges      []string `json:"badges"`
	Rating      float64  `json:"rating"`
	Stock       *int     `json:"stock"`
	Popularity  float64  `json:"popularity"`
}

func (p Product) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return UntitledProduct
}

func (p Product) HasPrice() bool {
	return p.Price != nil
}

// PriceValue returns the price, or 0 for "contact for price" products.
func (p Product) PriceValue() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// Purchasable is false only when stock is known to be zero.
func (p Product) Purchasable() bool {
	return p.Stock == nil || *p.Stock > 0
}

// SizeLabel renders the size the way product cards show it:
// inches for televisions, kilograms for everything else.
func (p Product) SizeLabel() string {
	if p.Size == "" {
		return ""
	}
	if strings.EqualFold(p.Category, "Televisions") {
		return p.Size + "″"
	}
	return p.Size + " kg"
}
