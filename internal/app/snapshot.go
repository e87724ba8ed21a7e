package app

import (
	"makwell-storefront/internal/cart"
	"makwell-storefront/internal/catalog"
	"makwell-storefront/internal/imageresolver"
	"makwell-storefront/internal/listing"
	"makwell-storefront/internal/preference"

	"github.com/shopspring/decimal"
)

// Card is a product as the grid renders it.
type Card struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Size        string   `json:"size,omitempty"`
	Price       *float64 `json:"price"`
	PriceLabel  string   `json:"priceLabel"`
	Image       string   `json:"image"`
	Rating      float64  `json:"rating"`
	Badges      []string `json:"badges"`
	Purchasable bool     `json:"purchasable"`
	InCart      int      `json:"inCart"`
}

type Listing struct {
	Cards    []Card `json:"cards"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	Pages    int    `json:"pages"`
	PageSize int    `json:"pageSize"`
}

type CatalogStatus struct {
	Loading bool   `json:"loading"`
	Loaded  bool   `json:"loaded"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
}

type CartView struct {
	cart.Summary
	SubtotalLabel string `json:"subtotalLabel"`
	Currency      string `json:"currency"`
}

// Snapshot is the full render input after one command.
type Snapshot struct {
	View        listing.ViewState      `json:"view"`
	Listing     Listing                `json:"listing"`
	Categories  []string               `json:"categories"`
	Cart        CartView               `json:"cart"`
	Preferences preference.Preferences `json:"preferences"`
	Catalog     CatalogStatus          `json:"catalog"`
}

func toCard(p catalog.Product, images *imageresolver.Resolver, ledger *cart.Ledger, currency string) Card {
	c := Card{
		ID:          p.ID,
		Name:        p.DisplayName(),
		Category:    p.Category,
		Size:        p.SizeLabel(),
		Price:       p.Price,
		PriceLabel:  catalog.ContactForPrice,
		Rating:      p.Rating,
		Badges:      p.Badges,
		Purchasable: p.Purchasable(),
		InCart:      ledger.Quantity(p.ID),
	}
	if p.HasPrice() {
		c.PriceLabel = FormatMoney(decimal.NewFromFloat(p.PriceValue()), currency)
	}
	if c.Badges == nil {
		c.Badges = []string{}
	}
	if candidates := images.Candidates(p.Image, p.ID); len(candidates) > 0 {
		c.Image = candidates[0]
	}
	return c
}

func toListing(res listing.Result, images *imageresolver.Resolver, ledger *cart.Ledger, currency string) Listing {
	cards := make([]Card, 0, len(res.Items))
	for _, p := range res.Items {
		cards = append(cards, toCard(p, images, ledger, currency))
	}
	return Listing{
		Cards:    cards,
		Total:    res.Total,
		Page:     res.Page,
		Pages:    res.Pages,
		PageSize: res.PageSize,
	}
}
