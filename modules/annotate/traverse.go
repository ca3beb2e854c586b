package annotate

import (
	"io"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"pricepeek/modules/currency"
)

// AnnotateHTML parses an HTML document, runs one full annotation pass
// over it, and serializes the result. Returned matches are everything
// that got marked, structured elements and text runs both.
func AnnotateHTML(r io.Reader) (string, []currency.PriceMatch, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", nil, err
	}
	matches := AnnotateDocument(doc)
	out, err := doc.Html()
	if err != nil {
		return "", nil, err
	}
	return out, matches, nil
}

// AnnotateDocument is one atomic annotation pass over a parsed
// document: the structured-element heuristic first (it needs to see
// containers whole, before the text walk wraps pieces of them), then
// the text walk over everything still unmarked. The pass is
// idempotent — every marked node fails the eligibility predicate, so
// running it again over its own output changes nothing.
func AnnotateDocument(doc *goquery.Document) []currency.PriceMatch {
	matches := applyHeuristic(doc)
	for _, root := range doc.Nodes {
		walk(root, &matches)
	}
	return matches
}

func walk(n *html.Node, matches *[]currency.PriceMatch) {
	if n.Type == html.ElementNode && !EligibleForScan(n) {
		return
	}

	// Snapshot children before descending: splicing marked spans in
	// place rewires sibling links.
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	for _, c := range children {
		switch c.Type {
		case html.TextNode:
			spliceTextNode(n, c, matches)
		default:
			walk(c, matches)
		}
	}
}

// spliceTextNode replaces one text node with the annotator's segment
// reconstruction: plain segments stay text nodes, marked segments
// become inert span markers carrying the hand-off attributes. When
// nothing in the run matches, the node is left exactly as it was.
func spliceTextNode(parent, textNode *html.Node, matches *[]currency.PriceMatch) {
	ann := Annotate(textNode.Data)
	if !ann.DidMatch {
		return
	}

	for _, seg := range ann.Segments {
		var node *html.Node
		if seg.Match != nil {
			node = newMarkerSpan(seg)
			*matches = append(*matches, *seg.Match)
		} else {
			node = &html.Node{Type: html.TextNode, Data: seg.Text}
		}
		parent.InsertBefore(node, textNode)
	}
	parent.RemoveChild(textNode)
}

func newMarkerSpan(seg Segment) *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
	}
	setMarkAttrs(span, seg.Match)
	span.AppendChild(&html.Node{Type: html.TextNode, Data: seg.Text})
	return span
}

func markElement(n *html.Node, m *currency.PriceMatch) {
	setMarkAttrs(n, m)
}

func setMarkAttrs(n *html.Node, m *currency.PriceMatch) {
	n.Attr = append(n.Attr,
		html.Attribute{Key: AttrDetected, Val: "true"},
		html.Attribute{Key: AttrAmount, Val: strconv.FormatFloat(m.Amount, 'f', -1, 64)},
		html.Attribute{Key: AttrCurrency, Val: m.CurrencyCode},
	)
}

// eligibleWithAncestors applies the scan predicate to an element and
// every element above it. Selector lookups reach nodes directly, so
// unlike the walk they have to climb for context.
func eligibleWithAncestors(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && !EligibleForScan(cur) {
			return false
		}
	}
	return true
}
