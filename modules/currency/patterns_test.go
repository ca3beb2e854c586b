package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricepeek/modules/currency"
)

func TestCombinedPatternFindsNonOverlappingMatches(t *testing.T) {
	text := "Was $1,299.99 now $999.99 (save €50)"
	spans := currency.CombinedPattern().FindAllStringIndex(text, -1)
	require.Len(t, spans, 3)

	got := make([]string, 0, len(spans))
	prevEnd := 0
	for _, sp := range spans {
		assert.GreaterOrEqual(t, sp[0], prevEnd, "spans must not overlap")
		prevEnd = sp[1]
		got = append(got, text[sp[0]:sp[1]])
	}
	assert.Equal(t, []string{"$1,299.99", "$999.99", "€50"}, got)
}

func TestCombinedPatternPrefersLongerLeadToken(t *testing.T) {
	assert.Equal(t, "US$50", currency.CombinedPattern().FindString("US$50 shipped"))
	assert.Equal(t, "A$19.99", currency.CombinedPattern().FindString("A$19.99"))
	assert.Equal(t, "CN¥200", currency.CombinedPattern().FindString("CN¥200"))
}

// Letter-form markers embedded inside unrelated words must not match:
// the \b anchor stands in for a negative lookbehind on ASCII letters.
func TestCombinedPatternWordBoundary(t *testing.T) {
	for _, text := range []string{
		"meeting lasts 12 hours 30",
		"open doors 99 times",
		"BONUS 500 points",
		"aud iences of 3",
	} {
		assert.Empty(t, currency.CombinedPattern().FindString(text), text)
	}

	// The same markers at a word boundary do match.
	assert.Equal(t, "Rs 500", currency.CombinedPattern().FindString("pay Rs 500 now"))
	assert.Equal(t, "AUD 500", currency.CombinedPattern().FindString("pay AUD 500 now"))
}

func TestFindSymbol(t *testing.T) {
	code, ok := currency.FindSymbol("M.R.P.: ₹ 2,400")
	require.True(t, ok)
	assert.Equal(t, "INR", code)

	code, ok = currency.FindSymbol("total US$ due")
	require.True(t, ok)
	assert.Equal(t, "USD", code)

	_, ok = currency.FindSymbol("no currency here")
	assert.False(t, ok)
}
