package annotate

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricepeek/modules/currency"
)

// structuralSelectors lists containers worth a second look because
// their digits and currency symbol are often split across child
// elements the text walk sees separately. Site-specific selectors come
// first, generic "looks like a price" selectors second; an element is
// only ever extracted by the first selector that reaches it.
var structuralSelectors = []string{
	// Amazon
	".a-price .a-offscreen",
	"#priceblock_ourprice",
	"#priceblock_dealprice",
	".a-price",
	// Flipkart
	"._30jeq3",
	".Nx9bqj",
	// Generic
	"[itemprop=price]",
	"[class*=price]",
	"[id*=price]",
	"[class*=Price]",
}

// ExtractFromElement pulls a single best-guess price out of one
// structured element. Rules, in order, first hit wins:
//
//  1. a currency-marker-adjacent match in the element's own text;
//  2. a bare numeric token whose surrounding context (the parent
//     container's text) carries a currency symbol;
//  3. a bare numeric token with the fallback currency's symbol
//     somewhere in the element.
//
// Returns nil when no rule applies; the element is then left alone.
func ExtractFromElement(s *goquery.Selection) *currency.PriceMatch {
	text := normalizeSpace(s.Text())
	if text == "" {
		return nil
	}

	for _, cand := range currency.CombinedPattern().FindAllString(text, -1) {
		if m := currency.Classify(cand); m != nil {
			return m
		}
	}

	bare := currency.AmountPattern().FindString(text)
	if bare == "" {
		return nil
	}
	amount, ok := currency.ParseAmount(bare)
	if !ok {
		return nil
	}

	if code, found := currency.FindSymbol(normalizeSpace(s.Parent().Text())); found {
		return &currency.PriceMatch{Amount: amount, CurrencyCode: code, OriginalText: bare}
	}

	if def, found := currency.Lookup(currency.FallbackCode); found && strings.Contains(text, def.Symbol) {
		return &currency.PriceMatch{Amount: amount, CurrencyCode: currency.FallbackCode, OriginalText: bare}
	}
	return nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// applyHeuristic runs the selector list over the document and marks
// every element a rule succeeds on. Elements already marked, inside an
// ineligible subtree, or containing a marked descendant are skipped
// and left unmodified.
func applyHeuristic(doc *goquery.Document) []currency.PriceMatch {
	var matches []currency.PriceMatch
	for _, selector := range structuralSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			n := s.Get(0)
			if !eligibleWithAncestors(n) {
				return
			}
			if s.Find("["+AttrDetected+"]").Length() > 0 {
				return
			}
			m := ExtractFromElement(s)
			if m == nil {
				return
			}
			markElement(n, m)
			matches = append(matches, *m)
		})
	}
	return matches
}
