package rules

import (
	"sort"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// LiteralMatcher finds occurrences of a fixed string set in one pass.
type LiteralMatcher interface {
	// FindAll returns the byte spans of the occurrences found in s, left to right.
	FindAll(s string) []Span
}

// LiteralFunc adapts a function to LiteralMatcher.
type LiteralFunc func(s string) []Span

// FindAll implements LiteralMatcher.
func (f LiteralFunc) FindAll(s string) []Span {
	return f(s)
}

// literalAutomaton is an Aho-Corasick automaton over the literal infixes.
// The library reports overlapping occurrences, so FindAll keeps the longest
// match at the leftmost start and skips anything starting before its end.
// The result may still overlap regex infix matches, which the resolver merges.
type literalAutomaton struct {
	find func(string) []ahocorasick.Match
}

// NewLiteralMatcher builds an automaton over literals. Empty strings and
// duplicates are dropped; it returns nil when nothing is left.
func NewLiteralMatcher(literals []string) LiteralMatcher {
	seen := make(map[string]struct{}, len(literals))
	uniq := make([]string, 0, len(literals))
	for _, lit := range literals {
		if lit == "" {
			continue
		}
		if _, ok := seen[lit]; ok {
			continue
		}
		seen[lit] = struct{}{}
		uniq = append(uniq, lit)
	}
	if len(uniq) == 0 {
		return nil
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: false,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
		DFA:                  true,
	})
	ac := builder.Build(uniq)
	return &literalAutomaton{find: ac.FindAll}
}

// FindAll implements LiteralMatcher.
func (l *literalAutomaton) FindAll(s string) []Span {
	matches := l.find(s)
	if len(matches) == 0 {
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Start() != b.Start() {
			return a.Start() < b.Start()
		}
		return a.End() > b.End()
	})

	spans := make([]Span, 0, len(matches))
	end := 0
	for _, m := range matches {
		if m.Start() < end || m.End() <= m.Start() {
			continue
		}
		spans = append(spans, Span{Start: m.Start(), End: m.End()})
		end = m.End()
	}
	return spans
}
