package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricepeek/modules/currency"
)

func TestClassifyRecognizedForms(t *testing.T) {
	cases := []struct {
		in     string
		amount float64
		code   string
	}{
		{"₹1,234.56", 1234.56, "INR"},
		{"$5", 5, "USD"},
		{"US$5", 5, "USD"},
		{"A$2,000", 2000, "AUD"},
		{"C$12.50", 12.50, "CAD"},
		{"€100", 100, "EUR"},
		{"£9.99", 9.99, "GBP"},
		{"¥1,500", 1500, "JPY"},
		{"CN¥88", 88, "CNY"},
		{"₽750", 750, "RUB"},
		{"₩12,000", 12000, "KRW"},
		{"Rs. 1,499", 1499, "INR"},
		{"Rs 99", 99, "INR"},
		{"INR 2,50,000", 250000, "INR"},
		{"usd 42", 42, "USD"},
		{"  $3.14  ", 3.14, "USD"},
		{"$ 1,000", 1000, "USD"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			m := currency.Classify(tc.in)
			require.NotNil(t, m)
			assert.Equal(t, tc.amount, m.Amount)
			assert.Equal(t, tc.code, m.CurrencyCode)
		})
	}
}

func TestClassifyRejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"bare number", "100"},
		{"bare grouped number", "1,234.56"},
		{"zero dollars", "$0"},
		{"zero rupees", "₹0.00"},
		{"zero padded", "$00"},
		{"negative before symbol", "-$5"},
		{"negative after symbol", "$-5"},
		{"three fraction digits", "$12.345"},
		{"trailing junk", "$5 off"},
		{"letters in number", "$1,2f3"},
		{"marker without amount", "Rs"},
		{"marker glued to word", "INRX 100"},
		{"duration not a price", "12 hours"},
		{"word ending in marker letters", "yours truly"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, currency.Classify(tc.in))
		})
	}
}

// US$ must win over $, A$ over $, and CN¥ over ¥: a longer lead token
// is never consumed as its shorter prefix plus leftovers.
func TestClassifyLeadTokenPriority(t *testing.T) {
	cases := []struct {
		in   string
		code string
	}{
		{"US$50", "USD"},
		{"A$50", "AUD"},
		{"C$50", "CAD"},
		{"CN¥50", "CNY"},
		{"$50", "USD"},
		{"¥50", "JPY"},
	}
	for _, tc := range cases {
		m := currency.Classify(tc.in)
		require.NotNil(t, m, tc.in)
		assert.Equal(t, tc.code, m.CurrencyCode, tc.in)
		assert.Equal(t, 50.0, m.Amount, tc.in)
	}
}
