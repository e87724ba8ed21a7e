package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"makwell-storefront/internal/logger"

	"go.uber.org/zap"
)

// rawProduct accepts the loosely typed records found in hand-edited catalog files:
// ids and sizes may be numbers or strings, prices may be null, quoted or missing.
// Every field is raw so a mistyped value degrades to its default instead of
// failing the record.
type rawProduct struct {
	ID          json.RawMessage `json:"id"`
	Name        json.RawMessage `json:"name"`
	Title       json.RawMessage `json:"title"`
	Price       json.RawMessage `json:"price"`
	Category    json.RawMessage `json:"category"`
	Image       json.RawMessage `json:"image"`
	ImageRef    json.RawMessage `json:"imageRef"`
	Description json.RawMessage `json:"description"`
	Size        json.RawMessage `json:"size"`
	Tags        json.RawMessage `json:"tags"`
	Specs       json.RawMessage `json:"specs"`
	Badges      json.RawMessage `json:"badges"`
	Rating      json.RawMessage `json:"rating"`
	Stock       json.RawMessage `json:"stock"`
	Popularity  json.RawMessage `json:"popularity"`
}

type wrappedPayload struct {
	Products []json.RawMessage `json:"products"`
}

// Decode parses a catalog document: either a bare array of products or an
// object with a "products" array. A record that is not a JSON object is
// dropped with a warning; the rest of the catalog still loads.
func Decode(raw []byte) ([]Product, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrEmptySource
	}

	var records []json.RawMessage
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
	case '{':
		var wrapped wrappedPayload
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
		records = wrapped.Products
	default:
		return nil, ErrBadPayload
	}

	products := make([]Product, 0, len(records))
	for i, rec := range records {
		var r rawProduct
		if err := json.Unmarshal(rec, &r); err != nil {
			logger.L().Warn("dropping malformed product record",
				zap.String("layer", "catalog"),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		products = append(products, r.toProduct())
	}
	return products, nil
}

func (r rawProduct) toProduct() Product {
	p := Product{
		ID:          rawString(r.ID),
		Name:        firstNonEmpty(rawString(r.Name), rawString(r.Title)),
		Category:    rawString(r.Category),
		Image:       firstNonEmpty(rawString(r.Image), rawString(r.ImageRef)),
		Description: rawString(r.Description),
		Size:        rawString(r.Size),
		Tags:        rawStrings(r.Tags),
		Specs:       rawStrings(r.Specs),
		Badges:      rawStrings(r.Badges),
		Rating:      DefaultRating,
	}

	if price, ok := rawFloat(r.Price); ok && price >= 0 {
		p.Price = &price
	}
	if rating, ok := rawFloat(r.Rating); ok {
		p.Rating = math.Min(5, math.Max(0, rating))
	}
	if stock, ok := rawFloat(r.Stock); ok {
		n := int(math.Max(0, stock))
		p.Stock = &n
	}
	if pop, ok := rawFloat(r.Popularity); ok {
		p.Popularity = pop
	}

	return p
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// rawStrings reads a list field. A lone string or number becomes a
// one-element list; elements that are not scalars are skipped.
func rawStrings(raw json.RawMessage) []string {
	out := []string{}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := rawString(raw); s != "" {
			out = append(out, s)
		}
		return out
	}
	for _, item := range items {
		if s := rawString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func rawFloat(raw json.RawMessage) (float64, bool) {
	s := rawString(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
