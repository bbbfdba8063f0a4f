// Package rules holds the compiled, immutable rule bundle consumed by the
// tokenizer: ordered prefix, suffix and infix patterns, a literal infix
// automaton, optional whole-token and whole-URL matchers, and the exception
// lexicon.
//
// A Set is built once with Compile and then shared by pointer across every
// goroutine that tokenizes; it has no mutating methods.
package rules

import (
	"github.com/pkg/errors"

	"github.com/cognicore/ruletok/pkg/ruletok/internalerr"
)

// SubToken is one piece of an exception's fixed decomposition.
type SubToken struct {
	Orth string // surface form
	Norm string // normalized form, optional
}

// Spec is the uncompiled form of a Set.
type Spec struct {
	Prefixes       []string
	Suffixes       []string
	Infixes        []string
	LiteralInfixes []string
	// Literals, when non-nil, is used instead of an automaton built from LiteralInfixes.
	Literals   LiteralMatcher
	TokenMatch string
	URLMatch   string
	Exceptions map[string][]SubToken
}

// Set is a compiled rule bundle.
type Set struct {
	prefixes   []*Pattern
	suffixes   []*Pattern
	infixes    []*Pattern
	literals   LiteralMatcher
	tokenMatch *Pattern
	urlMatch   *Pattern
	exceptions map[string][]SubToken
}

// Stats summarizes the size of a Set.
type Stats struct {
	Prefixes   int
	Suffixes   int
	Infixes    int
	Literals   bool
	TokenMatch bool
	URLMatch   bool
	Exceptions int
}

// Compile builds a Set from spec. Any pattern that fails to compile aborts
// the whole build; the error names the list and index of the bad pattern.
func Compile(spec Spec) (*Set, error) {
	s := &Set{exceptions: make(map[string][]SubToken, len(spec.Exceptions))}

	var err error
	if s.prefixes, err = compileList("prefix", spec.Prefixes); err != nil {
		return nil, err
	}
	if s.suffixes, err = compileList("suffix", spec.Suffixes); err != nil {
		return nil, err
	}
	if s.infixes, err = compileList("infix", spec.Infixes); err != nil {
		return nil, err
	}

	if spec.TokenMatch != "" {
		if s.tokenMatch, err = CompilePattern(spec.TokenMatch); err != nil {
			return nil, errors.Wrap(err, "token match")
		}
	}
	if spec.URLMatch != "" {
		if s.urlMatch, err = CompilePattern(spec.URLMatch); err != nil {
			return nil, errors.Wrap(err, "url match")
		}
	}

	if spec.Literals != nil {
		s.literals = spec.Literals
	} else {
		s.literals = NewLiteralMatcher(spec.LiteralInfixes)
	}

	for text, subs := range spec.Exceptions {
		if text == "" {
			return nil, errors.Wrap(internalerr.ErrInvalidInput, "exception with empty key")
		}
		s.exceptions[text] = append([]SubToken(nil), subs...)
	}

	return s, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(spec Spec) *Set {
	s, err := Compile(spec)
	if err != nil {
		panic(err)
	}
	return s
}

func compileList(kind string, exprs []string) ([]*Pattern, error) {
	out := make([]*Pattern, 0, len(exprs))
	for i, expr := range exprs {
		p, err := CompilePattern(expr)
		if err != nil {
			return nil, errors.Wrapf(err, "%s pattern %d", kind, i)
		}
		out = append(out, p)
	}
	return out, nil
}

// Prefixes returns the prefix patterns in declared order. The slice is
// shared and must not be modified.
func (s *Set) Prefixes() []*Pattern { return s.prefixes }

// Suffixes returns the suffix patterns in declared order. The slice is
// shared and must not be modified.
func (s *Set) Suffixes() []*Pattern { return s.suffixes }

// Infixes returns the regex infix patterns in declared order. The slice is
// shared and must not be modified.
func (s *Set) Infixes() []*Pattern { return s.infixes }

// Literals returns the literal infix matcher, or nil.
func (s *Set) Literals() LiteralMatcher { return s.literals }

// TokenMatch returns the whole-token matcher, or nil.
func (s *Set) TokenMatch() *Pattern { return s.tokenMatch }

// URLMatch returns the whole-URL matcher, or nil.
func (s *Set) URLMatch() *Pattern { return s.urlMatch }

// Exception returns a copy of the fixed decomposition registered for text.
func (s *Set) Exception(text string) ([]SubToken, bool) {
	subs, ok := s.exceptions[text]
	if !ok {
		return nil, false
	}
	return append([]SubToken(nil), subs...), true
}

// Stats reports table sizes.
func (s *Set) Stats() Stats {
	return Stats{
		Prefixes:   len(s.prefixes),
		Suffixes:   len(s.suffixes),
		Infixes:    len(s.infixes),
		Literals:   s.literals != nil,
		TokenMatch: s.tokenMatch != nil,
		URLMatch:   s.urlMatch != nil,
		Exceptions: len(s.exceptions),
	}
}
