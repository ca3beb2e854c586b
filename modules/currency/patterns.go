package currency

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// amountPart recognizes a grouped decimal: digit groups separated by
// commas (group width is deliberately unconstrained so Indian 2-3-3
// grouping parses), with an optional 1-2 digit fraction after a period.
const amountPart = `[0-9]+(?:,[0-9]+)*(?:\.[0-9]{1,2})?`

// leadToken is one entry of the flattened, priority-ordered token list
// derived from the registry.
type leadToken struct {
	Text string
	Kind TokenKind
	Code string
}

// leadTokens holds every detection token across all currencies in the
// explicit total match order:
//
//  1. symbol forms before letter-code forms,
//  2. within a kind, longer tokens before shorter ones (so "US$" is
//     never consumed as "$" plus a stray "US"),
//  3. ties broken by registry declaration order.
//
// Both Classify's prefix scan and the combined pattern's alternation
// rely on this order.
var leadTokens = buildLeadTokens()

func buildLeadTokens() []leadToken {
	var tokens []leadToken
	order := make(map[string]int) // token text -> registry position, for tie-breaks
	for i, def := range definitions {
		for _, t := range def.Tokens {
			tokens = append(tokens, leadToken{Text: t.Text, Kind: t.Kind, Code: def.Code})
			if _, seen := order[t.Text]; !seen {
				order[t.Text] = i
			}
		}
	}
	sort.SliceStable(tokens, func(a, b int) bool {
		if tokens[a].Kind != tokens[b].Kind {
			return tokens[a].Kind == TokenSymbol
		}
		if len(tokens[a].Text) != len(tokens[b].Text) {
			return len(tokens[a].Text) > len(tokens[b].Text)
		}
		return order[tokens[a].Text] < order[tokens[b].Text]
	})
	return tokens
}

// combinedPattern is built once from the registry and shared read-only
// afterwards. Go's regexp prefers the leftmost alternative, so the
// alternation lists tokens in leadTokens order. Tokens that start with
// an ASCII letter get a \b anchor, which stands in for a negative
// lookbehind: a marker inside another word ("hours", "yours") has a
// word character before it and therefore no boundary.
var combinedPattern = buildCombinedPattern()

func buildCombinedPattern() *regexp.Regexp {
	alts := make([]string, 0, len(leadTokens))
	for _, t := range leadTokens {
		quoted := regexp.QuoteMeta(t.Text)
		if startsWithASCIILetter(t.Text) {
			quoted = `\b` + quoted
		}
		alts = append(alts, quoted)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)\s*` + amountPart)
}

func startsWithASCIILetter(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// CombinedPattern returns the single compiled recognition pattern for
// all registered currencies. It reports successive non-overlapping
// matches via the regexp FindAll API; each candidate still has to pass
// Classify before it counts as a price.
func CombinedPattern() *regexp.Regexp {
	return combinedPattern
}

var bareAmountPattern = regexp.MustCompile(amountPart)

// AmountPattern returns the compiled grouped-decimal pattern on its
// own, without any currency marker. The structured-element heuristic
// uses it to pull bare numeric tokens out of price-shaped containers.
func AmountPattern() *regexp.Regexp {
	return bareAmountPattern
}

// matchLeadToken finds the highest-priority token at the start of s,
// case-insensitively. Returns the owning token and the length in bytes
// of the matched prefix.
func matchLeadToken(s string) (leadToken, int, bool) {
	for _, t := range leadTokens {
		n := len(t.Text)
		if len(s) >= n && strings.EqualFold(s[:n], t.Text) {
			// Letter-form tokens must not continue into more letters:
			// "INRX" is not an INR marker.
			if t.Kind == TokenCode && len(s) > n {
				if r := rune(s[n]); unicode.IsLetter(r) {
					continue
				}
			}
			return t, n, true
		}
	}
	return leadToken{}, 0, false
}

// FindSymbol reports the first registered currency whose symbol-form
// token occurs anywhere in text. Used by the structured-element
// heuristic to pull a currency from surrounding context when an element
// holds bare digits.
func FindSymbol(text string) (string, bool) {
	for _, t := range leadTokens {
		if t.Kind != TokenSymbol {
			continue
		}
		if idx := strings.Index(text, t.Text); idx >= 0 {
			if startsWithASCIILetter(t.Text) && idx > 0 {
				if r := rune(text[idx-1]); unicode.IsLetter(r) {
					continue
				}
			}
			return t.Code, true
		}
	}
	return "", false
}
