package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/cognicore/ruletok/pkg/ruletok/internalerr"
	"github.com/cognicore/ruletok/pkg/ruletok/store"
	"github.com/cognicore/ruletok/pkg/ruletok/token"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu   sync.RWMutex
	docs map[string]store.Doc
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{docs: make(map[string]store.Doc)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// PutDoc implements store.Store.
func (s *Store) PutDoc(ctx context.Context, d store.Doc) error {
	if d.ID == "" {
		return errors.Wrap(internalerr.ErrInvalidInput, "document without id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[d.ID] = copyDoc(d)
	return nil
}

// GetDoc implements store.Store.
func (s *Store) GetDoc(ctx context.Context, id string) (store.Doc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.docs[id]
	if !ok {
		return store.Doc{}, false, nil
	}
	return copyDoc(d), true, nil
}

// ListDocs implements store.Store.
func (s *Store) ListDocs(ctx context.Context, limit int) ([]store.DocInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.RLock()
	out := make([]store.DocInfo, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d.Info())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// TopTokens implements store.Store.
func (s *Store) TopTokens(ctx context.Context, k int) ([]store.TokenCount, error) {
	if k <= 0 {
		return nil, nil
	}
	counts := make(map[string]int64)
	s.mu.RLock()
	for _, d := range s.docs {
		for _, t := range d.Tokens {
			counts[t.Text]++
		}
	}
	s.mu.RUnlock()

	out := make([]store.TokenCount, 0, len(counts))
	for text, n := range counts {
		out = append(out, store.TokenCount{Text: text, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func copyDoc(d store.Doc) store.Doc {
	d.Tokens = append([]token.Token(nil), d.Tokens...)
	return d
}
