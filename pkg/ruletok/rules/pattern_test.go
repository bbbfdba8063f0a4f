package rules

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/ruletok/pkg/ruletok/internalerr"
)

func TestCompilePatternRejectsBadInput(t *testing.T) {
	_, err := CompilePattern("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidPattern))

	_, err = CompilePattern(`(unclosed`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidPattern))
	assert.Contains(t, err.Error(), "(unclosed")
}

func TestPatternFindReportsByteOffsets(t *testing.T) {
	p, err := CompilePattern(`é+`)
	require.NoError(t, err)

	// "naïve éé": ï is two bytes, each é is two bytes.
	sp, ok := p.Find("naïve éé")
	require.True(t, ok)
	assert.Equal(t, Span{Start: 7, End: 11}, sp)
	assert.Equal(t, "éé", "naïve éé"[sp.Start:sp.End])
}

func TestPatternFindNoMatch(t *testing.T) {
	p, err := CompilePattern(`x`)
	require.NoError(t, err)

	_, ok := p.Find("abc")
	assert.False(t, ok)
	assert.Nil(t, p.FindAll("abc"))
}

func TestPatternFindAll(t *testing.T) {
	p, err := CompilePattern(`\.`)
	require.NoError(t, err)

	got := p.FindAll("a.b.c.")
	assert.Equal(t, []Span{{1, 2}, {3, 4}, {5, 6}}, got)
}

func TestPatternFindAllLookBehind(t *testing.T) {
	// Only the period after a digit qualifies.
	p, err := CompilePattern(`(?<=[0-9])\.`)
	require.NoError(t, err)

	got := p.FindAll("a.1.b.2.")
	assert.Equal(t, []Span{{3, 4}, {7, 8}}, got)
}

func TestPatternMatchesWhole(t *testing.T) {
	p, err := CompilePattern(`^\$[0-9]+(?:\.[0-9]{2})?$`)
	require.NoError(t, err)

	assert.True(t, p.MatchesWhole("$5.00"))
	assert.False(t, p.MatchesWhole("$5.00!"))
	assert.False(t, p.MatchesWhole("x$5"))

	// Unanchored patterns only count when the leftmost match spans the input.
	q, err := CompilePattern(`ab`)
	require.NoError(t, err)
	assert.True(t, q.MatchesWhole("ab"))
	assert.False(t, q.MatchesWhole("abab"))
}

func TestPatternString(t *testing.T) {
	p, err := CompilePattern(`\(`)
	require.NoError(t, err)
	assert.Equal(t, `\(`, p.String())
}

func TestByteOffsets(t *testing.T) {
	assert.Nil(t, byteOffsets("ascii"))
	assert.Equal(t, []int{0, 1, 3, 4}, byteOffsets("aéb"))
}
