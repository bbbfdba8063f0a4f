// Package infix finds split points inside a chunk's residual text and cuts
// the text around them.
//
// Candidate boundaries come from two independent detectors, the literal
// automaton and the regex infix patterns. They are pooled, ordered
// leftmost-longest, and overlapping candidates are merged into one span
// rather than one of them being dropped.
package infix

import (
	"sort"

	"github.com/cognicore/ruletok/pkg/ruletok/rules"
)

// Source identifies the detector that produced a match.
type Source int

const (
	Literal Source = iota
	Regex
)

func (s Source) String() string {
	switch s {
	case Literal:
		return "literal"
	case Regex:
		return "regex"
	default:
		return "unknown"
	}
}

// Match is a candidate infix boundary, in bytes of the residual text.
type Match struct {
	rules.Span
	Source Source
}

// Split cuts text at the infix boundaries defined by rs. The returned
// segments concatenate to text; a text without boundaries comes back as a
// single segment.
func Split(text string, rs *rules.Set) []string {
	if text == "" {
		return nil
	}
	matches := Collect(text, rs)
	if len(matches) == 0 {
		return []string{text}
	}
	segs := Slice(text, Merge(matches))
	if len(segs) == 0 {
		return []string{text}
	}
	return segs
}

// Collect gathers every non-empty literal and regex infix match in text.
func Collect(text string, rs *rules.Set) []Match {
	var matches []Match
	if lit := rs.Literals(); lit != nil {
		for _, sp := range lit.FindAll(text) {
			if sp.Len() > 0 {
				matches = append(matches, Match{Span: sp, Source: Literal})
			}
		}
	}
	for _, p := range rs.Infixes() {
		for _, sp := range p.FindAll(text) {
			if sp.Len() > 0 {
				matches = append(matches, Match{Span: sp, Source: Regex})
			}
		}
	}
	return matches
}

// Merge resolves candidate matches into non-overlapping spans, left to
// right. Candidates are ordered by start, longer first on ties. A candidate
// starting at or after the last accepted end opens a new span; one that
// starts inside it but reaches further extends it; one fully inside it is
// dropped. The input slice is reordered.
func Merge(matches []Match) []rules.Span {
	if len(matches) == 0 {
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Len() > b.Len()
	})

	spans := make([]rules.Span, 0, len(matches))
	end := 0
	for _, m := range matches {
		switch {
		case len(spans) == 0 || m.Start >= end:
			spans = append(spans, m.Span)
			end = m.End
		case m.End > end:
			spans[len(spans)-1].End = m.End
			end = m.End
		}
	}
	return spans
}

// Slice cuts text around spans, which must be sorted and non-overlapping.
// Non-empty runs between spans become segments of their own.
func Slice(text string, spans []rules.Span) []string {
	segs := make([]string, 0, 2*len(spans)+1)
	last := 0
	for _, sp := range spans {
		if sp.Start > last {
			segs = append(segs, text[last:sp.Start])
		}
		segs = append(segs, text[sp.Start:sp.End])
		last = sp.End
	}
	if last < len(text) {
		segs = append(segs, text[last:])
	}
	return segs
}
