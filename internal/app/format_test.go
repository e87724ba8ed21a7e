package app

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{name: "Whole", amount: "12999", currency: "INR", want: "₹12,999"},
		{name: "Fraction", amount: "1999.5", currency: "inr", want: "₹1,999.50"},
		{name: "Rounded", amount: "0.999", currency: "USD", want: "$1"},
		{name: "Zero", amount: "0", currency: "INR", want: "₹0"},
		{name: "Million", amount: "1234567.89", currency: "EUR", want: "€1,234,567.89"},
		{name: "EmptyCurrencyIsINR", amount: "1299", currency: "", want: "₹1,299"},
		{name: "UnknownCurrency", amount: "42", currency: "AED", want: "AED 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}
