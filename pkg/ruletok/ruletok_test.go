package ruletok

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/ruletok/pkg/ruletok/ingest"
	"github.com/cognicore/ruletok/pkg/ruletok/internalerr"
	"github.com/cognicore/ruletok/pkg/ruletok/rules/english"
	"github.com/cognicore/ruletok/pkg/ruletok/sentence"
	"github.com/cognicore/ruletok/pkg/ruletok/store/memstore"
	"github.com/cognicore/ruletok/pkg/ruletok/token"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	rs, err := english.Rules()
	require.NoError(t, err)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return New(Options{
		Store:    memstore.New(),
		Pipeline: ingest.NewPipeline(sentence.New(rs, sentence.Options{}), ingest.Options{}),
		Now:      func() time.Time { return fixed },
	})
}

func TestIngestAndReadBack(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	defer e.Close()

	id, doc, err := e.Ingest(ctx, IngestDoc{Source: "a.txt", Body: "don't stop.\nok"})
	require.NoError(t, err)
	require.Len(t, id, 26)
	assert.Equal(t, []string{"do", "n't", "stop", ".", "ok"}, token.Texts(doc.Tokens))

	toks, err := e.Tokens(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, doc.Tokens, toks)

	docs, err := e.Docs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a.txt", docs[0].Source)
	assert.Equal(t, 14, docs[0].Chars)
	assert.Equal(t, 5, docs[0].Tokens)
}

func TestIngestIDsAreMonotonic(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	var prev string
	for i := 0; i < 20; i++ {
		id, _, err := e.Ingest(ctx, IngestDoc{Body: "x"})
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestTokensNotFound(t *testing.T) {
	e := newEngine(t)

	_, err := e.Tokens(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrNotFound))
}

func TestTopTokens(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	_, _, err := e.Ingest(ctx, IngestDoc{Body: "a b a."})
	require.NoError(t, err)
	_, _, err = e.Ingest(ctx, IngestDoc{Body: "a, b"})
	require.NoError(t, err)

	top, err := e.TopTokens(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "a", top[0].Text)
	assert.EqualValues(t, 3, top[0].Count)
}

func TestIngestCancelled(t *testing.T) {
	e := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := e.Ingest(ctx, IngestDoc{Source: "c.txt", Body: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	docs, err := e.Docs(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
