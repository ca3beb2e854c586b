package currency

import "strings"

// PriceMatch is one detected occurrence of a currency-tagged amount.
// Amount is always positive and CurrencyCode is always a registry key;
// a candidate that cannot satisfy both never becomes a PriceMatch.
type PriceMatch struct {
	Amount       float64
	CurrencyCode string
	OriginalText string
	// Offsets into the scanned run, filled in by the annotator.
	SpanStart int
	SpanEnd   int
}

// Classify decides whether a candidate substring is a price. The
// trimmed input must begin with a currency lead token (resolved through
// the leadTokens total order, so symbol forms win over code forms and
// longer prefixes over shorter ones); the remainder after the token and
// any separating whitespace must be exactly a grouped positive decimal.
// Anything else — no marker, a bare number, zero, a leading minus,
// trailing junk — yields nil.
func Classify(candidate string) *PriceMatch {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return nil
	}
	tok, n, ok := matchLeadToken(trimmed)
	if !ok {
		return nil
	}
	amount, ok := ParseAmount(trimmed[n:])
	if !ok {
		return nil
	}
	return &PriceMatch{
		Amount:       amount,
		CurrencyCode: tok.Code,
		OriginalText: trimmed,
	}
}
