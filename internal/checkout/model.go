package checkout

import "time"

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Item struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

// Payload is the serialised cart handed to whatever completes the purchase.
type Payload struct {
	Brand     string `json:"brand"`
	Currency  string `json:"currency"`
	Items     []Item `json:"items"`
	Timestamp string `json:"timestamp"`
}

// Receipt is what the storefront returns once a payload was handed off.
type Receipt struct {
	Reference string  `json:"reference"`
	Payload   Payload `json:"payload"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
