package annotate

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attribute names of the hand-off contract: a marked node carries a
// detected flag, a numeric amount, and a currency code. This triple is
// the only interface the display layer consumes.
const (
	AttrDetected = "data-pricepeek-detected"
	AttrAmount   = "data-pricepeek-amount"
	AttrCurrency = "data-pricepeek-currency"
)

// skipAtoms lists non-rendering containers, embedded frames, and
// form-control-like elements whose text must never be scanned.
var skipAtoms = map[atom.Atom]struct{}{
	atom.Script: {}, atom.Style: {}, atom.Noscript: {}, atom.Template: {},
	atom.Iframe: {}, atom.Object: {}, atom.Embed: {},
	atom.Textarea: {}, atom.Input: {}, atom.Select: {}, atom.Option: {},
	atom.Head: {}, atom.Title: {}, atom.Meta: {}, atom.Link: {},
	atom.Canvas: {}, atom.Svg: {},
}

// EligibleForScan is the predicate the traversal applies to an element
// before descending into it. An element is ineligible when it is a
// non-rendering container, hidden, user-editable, or already marked
// detected. Hiddenness is judged from the markup-level signals present
// at scan time (hidden attribute, inline display/visibility,
// aria-hidden); computed-style hiddenness is the concern of a host
// with a real renderer.
func EligibleForScan(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if _, skip := skipAtoms[n.DataAtom]; skip {
		return false
	}

	for _, a := range n.Attr {
		switch a.Key {
		case AttrDetected:
			return false
		case "hidden":
			return false
		case "aria-hidden":
			if a.Val == "true" {
				return false
			}
		case "contenteditable":
			if !strings.EqualFold(a.Val, "false") {
				return false
			}
		case "style":
			style := strings.ToLower(a.Val)
			if strings.Contains(style, "display:none") ||
				strings.Contains(style, "display: none") ||
				strings.Contains(style, "visibility:hidden") ||
				strings.Contains(style, "visibility: hidden") {
				return false
			}
		}
	}
	return true
}
