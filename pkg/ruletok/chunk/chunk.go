// Package chunk tokenizes a single whitespace-free chunk of text.
//
// The decision procedure runs in fixed precedence: exception lexicon,
// whole-token match, whole-URL match, then prefix stripping, suffix
// stripping and infix splitting of what remains. The first step that fully
// resolves the chunk wins, and the emitted tokens always tile the chunk.
package chunk

import (
	"unicode/utf8"

	"github.com/cognicore/ruletok/pkg/ruletok/infix"
	"github.com/cognicore/ruletok/pkg/ruletok/rules"
	"github.com/cognicore/ruletok/pkg/ruletok/token"
)

// Path records which step resolved a chunk.
type Path int

const (
	PathException Path = iota
	PathTokenMatch
	PathURL
	PathSplit
	PathWhole // no rule applied

	NumPaths = int(PathWhole) + 1
)

func (p Path) String() string {
	switch p {
	case PathException:
		return "exception"
	case PathTokenMatch:
		return "token_match"
	case PathURL:
		return "url"
	case PathSplit:
		return "split"
	case PathWhole:
		return "whole"
	default:
		return "unknown"
	}
}

// Result is the outcome of tokenizing one chunk.
type Result struct {
	Tokens []token.Token
	Path   Path
	// PartialException is set when an exception entry existed for the chunk
	// but did not cover it, and general splitting was used instead.
	PartialException bool
}

// Tokenize splits text into tokens whose offsets start at base.
func Tokenize(text string, rs *rules.Set, base int) []token.Token {
	return Resolve(text, rs, base).Tokens
}

// Resolve is Tokenize, also reporting how the chunk was resolved.
func Resolve(text string, rs *rules.Set, base int) Result {
	if text == "" {
		return Result{}
	}

	var res Result
	if subs, ok := rs.Exception(text); ok {
		if toks, ok := fromException(text, subs, base); ok {
			return Result{Tokens: toks, Path: PathException}
		}
		res.PartialException = true
	}

	if m := rs.TokenMatch(); m != nil && m.MatchesWhole(text) {
		res.Tokens, res.Path = whole(text, base), PathTokenMatch
		return res
	}
	if m := rs.URLMatch(); m != nil && m.MatchesWhole(text) {
		res.Tokens, res.Path = whole(text, base), PathURL
		return res
	}

	res.Tokens, res.Path = split(text, rs, base)
	return res
}

// fromException lays the exception's sub-tokens end to end from base. It
// reports false when their combined length differs from the chunk's, in
// which case the entry is ignored.
func fromException(text string, subs []rules.SubToken, base int) ([]token.Token, bool) {
	toks := make([]token.Token, 0, len(subs))
	off := base
	for _, s := range subs {
		if s.Orth == "" {
			continue
		}
		t := token.New(s.Orth, off)
		t.Norm = s.Norm
		toks = append(toks, t)
		off = t.End
	}
	return toks, off-base == utf8.RuneCountInString(text)
}

func whole(text string, base int) []token.Token {
	return []token.Token{token.New(text, base)}
}

// split runs prefix stripping, suffix stripping and infix splitting.
func split(text string, rs *rules.Set, base int) ([]token.Token, Path) {
	var toks []token.Token
	off := base
	rest := text

	for rest != "" {
		p, ok := matchPrefix(rest, rs.Prefixes())
		if !ok {
			break
		}
		t := token.New(p, off)
		toks = append(toks, t)
		off = t.End
		rest = rest[len(p):]
	}

	// Suffixes are found outermost first.
	var suffixes []string
	for rest != "" {
		s, ok := matchSuffix(rest, rs.Suffixes())
		if !ok {
			break
		}
		suffixes = append(suffixes, s)
		rest = rest[:len(rest)-len(s)]
	}

	var segs []string
	if rest != "" {
		segs = infix.Split(rest, rs)
	}
	if len(toks) == 0 && len(suffixes) == 0 && len(segs) <= 1 {
		return whole(text, base), PathWhole
	}

	for _, seg := range segs {
		t := token.New(seg, off)
		toks = append(toks, t)
		off = t.End
	}
	for i := len(suffixes) - 1; i >= 0; i-- {
		t := token.New(suffixes[i], off)
		toks = append(toks, t)
		off = t.End
	}
	return toks, PathSplit
}

// matchPrefix returns the text of the first pattern, in order, that matches
// non-empty at the start of s.
func matchPrefix(s string, patterns []*rules.Pattern) (string, bool) {
	for _, p := range patterns {
		sp, ok := p.Find(s)
		if ok && sp.Start == 0 && sp.End > 0 {
			return s[:sp.End], true
		}
	}
	return "", false
}

// matchSuffix returns the text of the first pattern, in order, having a
// non-empty match that ends exactly at the end of s. Every match of a
// pattern is considered, not only the leftmost, since look-behind rules can
// match earlier in s as well.
func matchSuffix(s string, patterns []*rules.Pattern) (string, bool) {
	for _, p := range patterns {
		spans := p.FindAll(s)
		for i := len(spans) - 1; i >= 0; i-- {
			sp := spans[i]
			if sp.End == len(s) && sp.Len() > 0 {
				return s[sp.Start:], true
			}
		}
	}
	return "", false
}
