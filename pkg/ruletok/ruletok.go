package ruletok

import (
	"context"
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	"github.com/cognicore/ruletok/pkg/ruletok/ingest"
	"github.com/cognicore/ruletok/pkg/ruletok/internalerr"
	"github.com/cognicore/ruletok/pkg/ruletok/store"
	"github.com/cognicore/ruletok/pkg/ruletok/token"
)

// Engine tokenizes documents and keeps their token streams in a store.
type Engine struct {
	store    store.Store
	pipeline *ingest.Pipeline
	now      func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures an Engine
type Options struct {
	Store    store.Store
	Pipeline *ingest.Pipeline
	// Now overrides the clock used for document timestamps and IDs.
	Now func() time.Time
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		store:    opts.Store,
		pipeline: opts.Pipeline,
		now:      opts.Now,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// Close cleanly shuts down the engine and its store.
func (e *Engine) Close() error {
	return e.store.Close()
}

// IngestDoc is a document to be tokenized and stored.
type IngestDoc struct {
	Source string
	Body   string
}

// Ingest tokenizes d, stores the result under a new ID and returns both.
func (e *Engine) Ingest(ctx context.Context, d IngestDoc) (string, ingest.Document, error) {
	doc, err := e.pipeline.Process(ctx, strings.NewReader(d.Body))
	if err != nil {
		return "", ingest.Document{}, errors.Wrapf(err, "tokenize %s", d.Source)
	}

	now := e.now()
	id := e.newID(now)
	rec := store.Doc{
		ID:        id,
		Source:    d.Source,
		CreatedAt: now,
		Chars:     doc.Chars,
		Tokens:    doc.Tokens,
	}
	if err := e.store.PutDoc(ctx, rec); err != nil {
		return "", ingest.Document{}, errors.Wrapf(err, "store %s", d.Source)
	}
	return id, doc, nil
}

// Tokens returns the stored token stream of a document.
func (e *Engine) Tokens(ctx context.Context, id string) ([]token.Token, error) {
	doc, found, err := e.store.GetDoc(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrapf(internalerr.ErrNotFound, "document %s", id)
	}
	return doc.Tokens, nil
}

// Docs lists stored documents, newest first.
func (e *Engine) Docs(ctx context.Context, limit int) ([]store.DocInfo, error) {
	return e.store.ListDocs(ctx, limit)
}

// TopTokens returns the k most frequent token texts across stored documents.
func (e *Engine) TopTokens(ctx context.Context, k int) ([]store.TokenCount, error) {
	return e.store.TopTokens(ctx, k)
}

func (e *Engine) newID(t time.Time) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), e.entropy).String()
}
