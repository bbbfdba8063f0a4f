package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLiteralMatcherEmpty(t *testing.T) {
	assert.Nil(t, NewLiteralMatcher(nil))
	assert.Nil(t, NewLiteralMatcher([]string{"", ""}))
}

func TestLiteralMatcherLongestWins(t *testing.T) {
	m := NewLiteralMatcher([]string{"-", "--", "---"})
	require.NotNil(t, m)

	got := m.FindAll("a---b-c")
	assert.Equal(t, []Span{{1, 4}, {5, 6}}, got)
}

func TestLiteralMatcherNonOverlapping(t *testing.T) {
	tests := []struct {
		name     string
		literals []string
		input    string
		want     []Span
	}{
		{"repeated literal", []string{"::"}, "::::", []Span{{0, 2}, {2, 4}}},
		{"odd run", []string{"::"}, ":::", []Span{{0, 2}}},
		{"longer literal first", []string{":))", ":)", ":("}, ":)):(", []Span{{0, 3}, {3, 5}}},
		{"adjacent emoticons", []string{":-)", "-", ":"}, ":-)-:", []Span{{0, 3}, {3, 4}, {4, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLiteralMatcher(tt.literals)
			require.NotNil(t, m)
			assert.Equal(t, tt.want, m.FindAll(tt.input))
		})
	}
}

func TestLiteralMatcherByteOffsets(t *testing.T) {
	m := NewLiteralMatcher([]string{"…"})
	require.NotNil(t, m)

	s := "é…x"
	got := m.FindAll(s)
	require.Len(t, got, 1)
	assert.Equal(t, "…", s[got[0].Start:got[0].End])
	assert.Equal(t, 2, got[0].Start)
}

func TestLiteralMatcherNoMatch(t *testing.T) {
	m := NewLiteralMatcher([]string{":)", ":("})
	require.NotNil(t, m)
	assert.Empty(t, m.FindAll("plain"))
}

func TestLiteralMatcherDedupes(t *testing.T) {
	m := NewLiteralMatcher([]string{"/", "/", ""})
	require.NotNil(t, m)
	assert.Equal(t, []Span{{3, 4}}, m.FindAll("and/or"))
}
