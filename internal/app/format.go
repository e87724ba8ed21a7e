package app

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// FormatMoney renders amount with the currency symbol and thousands
// separators. Whole amounts have no fraction: "₹1,299", "₹1,299.50".
// An empty currency formats as DefaultCurrency.
func FormatMoney(amount decimal.Decimal, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	amount = amount.Round(2)

	whole := amount.Truncate(0)
	frac := amount.Sub(whole).Abs()

	p := message.NewPrinter(language.English)
	s := p.Sprintf("%d", whole.IntPart())
	if amount.IsNegative() && whole.IsZero() {
		s = "-" + s
	}
	if !frac.IsZero() {
		s += "." + frac.StringFixed(2)[2:]
	}

	if sym, ok := currencySymbols[currency]; ok {
		if strings.HasPrefix(s, "-") {
			return "-" + sym + s[1:]
		}
		return sym + s
	}
	return currency + " " + s
}
