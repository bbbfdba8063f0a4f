package store

import (
	"context"
	"time"

	"github.com/cognicore/ruletok/pkg/ruletok/token"
)

// Store persists tokenized documents.
type Store interface {
	Close() error

	// PutDoc inserts d, replacing any document with the same ID.
	PutDoc(ctx context.Context, d Doc) error
	GetDoc(ctx context.Context, id string) (Doc, bool, error)
	// ListDocs returns document summaries, newest first. limit <= 0 means 20.
	ListDocs(ctx context.Context, limit int) ([]DocInfo, error)

	// TopTokens returns the k most frequent token texts across all documents.
	TopTokens(ctx context.Context, k int) ([]TokenCount, error)
}

// Doc is a stored token stream.
type Doc struct {
	ID        string
	Source    string
	CreatedAt time.Time
	Chars     int
	Tokens    []token.Token
}

// DocInfo summarizes a stored document without its tokens.
type DocInfo struct {
	ID        string
	Source    string
	CreatedAt time.Time
	Chars     int
	Tokens    int
}

// TokenCount is the number of occurrences of a token text.
type TokenCount struct {
	Text  string
	Count int64
}

// Info returns d's summary.
func (d Doc) Info() DocInfo {
	return DocInfo{
		ID:        d.ID,
		Source:    d.Source,
		CreatedAt: d.CreatedAt,
		Chars:     d.Chars,
		Tokens:    len(d.Tokens),
	}
}
