package app

import "makwell-storefront/internal/listing"

// Command is one discrete storefront event. Dispatch applies it and returns
// the resulting Snapshot.
type Command interface {
	Name() string
}

type (
	SetQuery struct {
		Text string `json:"text"`
	}
	SetCategory struct {
		Category string `json:"category"`
	}
	SetSort struct {
		Sort listing.SortKey `json:"sort"`
	}
	SetPage struct {
		Page int `json:"page"`
	}
	AddToCart struct {
		ProductID string `json:"id"`
	}
	SetQuantity struct {
		ProductID string `json:"id"`
		Quantity  int    `json:"qty"`
	}
	RemoveFromCart struct {
		ProductID string `json:"id"`
	}
	ClearCart   struct{}
	ToggleTheme struct{}
	DismissCTA  struct{}
)

func (SetQuery) Name() string       { return "set_query" }
func (SetCategory) Name() string    { return "set_category" }
func (SetSort) Name() string        { return "set_sort" }
func (SetPage) Name() string        { return "set_page" }
func (AddToCart) Name() string      { return "add_to_cart" }
func (SetQuantity) Name() string    { return "set_quantity" }
func (RemoveFromCart) Name() string { return "remove_from_cart" }
func (ClearCart) Name() string      { return "clear_cart" }
func (ToggleTheme) Name() string    { return "toggle_theme" }
func (DismissCTA) Name() string     { return "dismiss_cta" }
