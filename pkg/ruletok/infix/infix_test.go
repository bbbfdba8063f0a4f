package infix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/ruletok/pkg/ruletok/rules"
	"github.com/cognicore/ruletok/pkg/ruletok/rules/english"
)

func span(start, end int) rules.Span { return rules.Span{Start: start, End: end} }

func TestMergeOverlappingExtends(t *testing.T) {
	got := Merge([]Match{
		{Span: span(4, 8), Source: Regex},
		{Span: span(2, 5), Source: Literal},
	})
	assert.Equal(t, []rules.Span{span(2, 8)}, got)
}

func TestMergeDropsContained(t *testing.T) {
	got := Merge([]Match{
		{Span: span(1, 6), Source: Literal},
		{Span: span(2, 4), Source: Regex},
	})
	assert.Equal(t, []rules.Span{span(1, 6)}, got)
}

func TestMergeSameStartLongestFirst(t *testing.T) {
	got := Merge([]Match{
		{Span: span(3, 4), Source: Regex},
		{Span: span(3, 6), Source: Literal},
		{Span: span(8, 9), Source: Regex},
	})
	assert.Equal(t, []rules.Span{span(3, 6), span(8, 9)}, got)
}

func TestMergeAdjacentStaySeparate(t *testing.T) {
	got := Merge([]Match{
		{Span: span(2, 3)},
		{Span: span(3, 5)},
	})
	assert.Equal(t, []rules.Span{span(2, 3), span(3, 5)}, got)
}

func TestMergeEmpty(t *testing.T) {
	assert.Nil(t, Merge(nil))
}

func TestSlice(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		spans []rules.Span
		want  []string
	}{
		{"middle", "a-b", []rules.Span{span(1, 2)}, []string{"a", "-", "b"}},
		{"leading", "-ab", []rules.Span{span(0, 1)}, []string{"-", "ab"}},
		{"trailing", "ab-", []rules.Span{span(2, 3)}, []string{"ab", "-"}},
		{"adjacent", "a--b", []rules.Span{span(1, 2), span(2, 3)}, []string{"a", "-", "-", "b"}},
		{"whole", "--", []rules.Span{span(0, 2)}, []string{"--"}},
		{"none", "abc", nil, []string{"abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slice(tt.text, tt.spans)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, strings.Join(got, ""))
		})
	}
}

func TestSplitLiteralAndRegex(t *testing.T) {
	rs := rules.MustCompile(rules.Spec{
		Infixes:        []string{`(?<=[a-z]),(?=[a-z])`},
		LiteralInfixes: []string{"/", "--"},
	})

	assert.Equal(t, []string{"and", "/", "or"}, Split("and/or", rs))
	assert.Equal(t, []string{"a", ",", "b", "--", "c"}, Split("a,b--c", rs))
	assert.Equal(t, []string{"plain"}, Split("plain", rs))
	assert.Nil(t, Split("", rs))
}

func TestSplitMergesAcrossDetectors(t *testing.T) {
	// The literal "-x" at [1,3) and the regex "x+" at [2,5) overlap and
	// must come out as one segment.
	rs := rules.MustCompile(rules.Spec{
		Infixes:        []string{`x+`},
		LiteralInfixes: []string{"-x"},
	})
	assert.Equal(t, []string{"a", "-xxx", "b"}, Split("a-xxxb", rs))
}

func TestSplitMultibyte(t *testing.T) {
	rs := rules.MustCompile(rules.Spec{
		Infixes:        []string{`(?<=[0-9])[+\-*^](?=[0-9])`},
		LiteralInfixes: []string{"…"},
	})
	assert.Equal(t, []string{"é", "…", "ü"}, Split("é…ü", rs))
	assert.Equal(t, []string{"ñ3", "-", "4"}, Split("ñ3-4", rs))
}

func TestCollectSkipsEmptyMatches(t *testing.T) {
	rs := rules.MustCompile(rules.Spec{Infixes: []string{`x*`}})
	got := Collect("axxb", rs)
	require.Len(t, got, 1)
	assert.Equal(t, span(1, 3), got[0].Span)
	assert.Equal(t, Regex, got[0].Source)
	assert.Equal(t, "regex", got[0].Source.String())
}

func TestSplitEnglishEmoticonRuns(t *testing.T) {
	rs, err := english.Rules()
	require.NoError(t, err)

	tests := []struct {
		input string
		want  []string
	}{
		{"hi:)):(", []string{"hi", ":))", ":("}},
		{"x:-)-:y", []string{"x", ":-)", "-", ":", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.input, rs))
		})
	}
}
