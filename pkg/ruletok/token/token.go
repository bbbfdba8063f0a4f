// Package token defines the offset-annotated token emitted by the tokenizer.
package token

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/cognicore/ruletok/pkg/ruletok/internalerr"
)

// Token is one atomic unit of output. Start and End are absolute character
// (rune) offsets in the source document, End exclusive.
type Token struct {
	Text  string
	Norm  string // normalized form from an exception entry, if any
	Start int
	End   int
}

// New returns a token for text starting at the given character offset.
func New(text string, start int) Token {
	return Token{Text: text, Start: start, End: start + utf8.RuneCountInString(text)}
}

// Len returns the token length in characters.
func (t Token) Len() int {
	return t.End - t.Start
}

// Texts extracts the token texts, in order.
func Texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

// CheckTiling verifies that toks exactly cover text starting at base:
// spans are contiguous, each span length matches its text, and the
// concatenated texts equal text.
func CheckTiling(text string, base int, toks []Token) error {
	if text == "" && len(toks) == 0 {
		return nil
	}
	if len(toks) == 0 {
		return errors.Wrapf(internalerr.ErrTiling, "chunk %q produced no tokens", text)
	}

	var joined strings.Builder
	next := base
	for i, t := range toks {
		if t.Start != next {
			return errors.Wrapf(internalerr.ErrTiling, "token %d %q starts at %d, want %d", i, t.Text, t.Start, next)
		}
		if n := utf8.RuneCountInString(t.Text); t.End-t.Start != n {
			return errors.Wrapf(internalerr.ErrTiling, "token %d %q spans %d chars, text has %d", i, t.Text, t.End-t.Start, n)
		}
		joined.WriteString(t.Text)
		next = t.End
	}
	if joined.String() != text {
		return errors.Wrapf(internalerr.ErrTiling, "tokens join to %q, chunk is %q", joined.String(), text)
	}
	return nil
}
