package rules

import (
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"

	"github.com/cognicore/ruletok/pkg/ruletok/internalerr"
)

// Span is a half-open byte range [Start, End) within the text a matcher ran on.
type Span struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Pattern is a compiled rule expression. The syntax is regexp2's, which
// supports look-ahead and look-behind assertions.
//
// A Pattern is safe for concurrent use.
type Pattern struct {
	expr string
	re   *regexp2.Regexp
}

// CompilePattern compiles expr. Errors wrap internalerr.ErrInvalidPattern.
func CompilePattern(expr string) (*Pattern, error) {
	if expr == "" {
		return nil, errors.Wrap(internalerr.ErrInvalidPattern, "empty expression")
	}
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, errors.Wrapf(internalerr.ErrInvalidPattern, "%q: %v", expr, err)
	}
	return &Pattern{expr: expr, re: re}, nil
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.expr
}

// Find returns the leftmost match in s. Engine errors (timeouts) count as no match.
func (p *Pattern) Find(s string) (Span, bool) {
	m, err := p.re.FindStringMatch(s)
	if err != nil || m == nil {
		return Span{}, false
	}
	offs := byteOffsets(s)
	return Span{Start: toByte(offs, m.Index), End: toByte(offs, m.Index+m.Length)}, true
}

// FindAll returns every successive non-overlapping match in s, left to right.
// Empty matches are included.
func (p *Pattern) FindAll(s string) []Span {
	m, err := p.re.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}
	offs := byteOffsets(s)
	var spans []Span
	for err == nil && m != nil {
		spans = append(spans, Span{Start: toByte(offs, m.Index), End: toByte(offs, m.Index+m.Length)})
		m, err = p.re.FindNextMatch(m)
	}
	return spans
}

// MatchesWhole reports whether the leftmost match in s covers all of s.
func (p *Pattern) MatchesWhole(s string) bool {
	sp, ok := p.Find(s)
	return ok && sp.Start == 0 && sp.End == len(s)
}

// byteOffsets maps rune indexes of s to byte offsets, with a trailing entry
// for len(s). regexp2 reports positions in runes. Nil means s is ASCII and
// the two coincide.
func byteOffsets(s string) []int {
	n := utf8.RuneCountInString(s)
	if n == len(s) {
		return nil
	}
	offs := make([]int, 0, n+1)
	for i := range s {
		offs = append(offs, i)
	}
	return append(offs, len(s))
}

func toByte(offs []int, r int) int {
	if offs == nil {
		return r
	}
	return offs[r]
}
