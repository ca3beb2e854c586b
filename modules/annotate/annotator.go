// Package annotate walks web-page text and markup, marks every
// recognized price with machine-readable attributes, and leaves the
// rest of the document byte-for-byte untouched.
package annotate

import "pricepeek/modules/currency"

// Segment is one fragment of an annotated text run. A plain fragment
// has a nil Match; a marked fragment carries the price it was
// classified as. Text always holds the literal source bytes, so
// concatenating all segments reproduces the input run exactly.
type Segment struct {
	Text  string
	Match *currency.PriceMatch
}

// Annotation is the result of scanning one text run.
type Annotation struct {
	DidMatch bool
	Segments []Segment
}

// Annotate scans a text run with the combined recognition pattern and
// resolves each candidate through currency.Classify. Candidates the
// classifier rejects (zero amounts and the like) are left inside the
// surrounding plain text, unwrapped. The transform is pure: no cursor
// state, no mutation of the input, same output for the same run.
func Annotate(textRun string) Annotation {
	if textRun == "" {
		return Annotation{}
	}

	var ann Annotation
	last := 0
	for _, sp := range currency.CombinedPattern().FindAllStringIndex(textRun, -1) {
		candidate := textRun[sp[0]:sp[1]]
		m := currency.Classify(candidate)
		if m == nil {
			continue
		}
		m.SpanStart, m.SpanEnd = sp[0], sp[1]

		if sp[0] > last {
			ann.Segments = append(ann.Segments, Segment{Text: textRun[last:sp[0]]})
		}
		ann.Segments = append(ann.Segments, Segment{Text: candidate, Match: m})
		ann.DidMatch = true
		last = sp[1]
	}

	if last < len(textRun) {
		ann.Segments = append(ann.Segments, Segment{Text: textRun[last:]})
	}
	return ann
}
