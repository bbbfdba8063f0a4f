package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/cognicore/ruletok/pkg/ruletok/internalerr"
	"github.com/cognicore/ruletok/pkg/ruletok/store"
	"github.com/cognicore/ruletok/pkg/ruletok/token"
)

// sqliteStore implements store.Store on SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path with WAL mode and
// foreign keys enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(internalerr.ErrStoreUnavailable, "open %s: %v", path, err)
	}
	// A single writer connection; concurrent writers would hit SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// WAL lets readers proceed while a document is being written.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrapf(internalerr.ErrStoreUnavailable, "%s: journal mode: %v", path, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, errors.Wrapf(internalerr.ErrStoreUnavailable, "%s: foreign keys: %v", path, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init schema")
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	chars INTEGER NOT NULL DEFAULT 0,
	n_tokens INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS doc_tokens (
	doc_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	text TEXT NOT NULL,
	norm TEXT NOT NULL DEFAULT '',
	start_off INTEGER NOT NULL,
	end_off INTEGER NOT NULL,
	PRIMARY KEY(doc_id, seq),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_doc_tokens_text ON doc_tokens(text);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// PutDoc inserts or replaces a document and its tokens in one transaction.
func (s *sqliteStore) PutDoc(ctx context.Context, d store.Doc) error {
	if d.ID == "" {
		return errors.Wrap(internalerr.ErrInvalidInput, "document without id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO docs (id, source, created_at, chars, n_tokens)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	source=excluded.source,
	created_at=excluded.created_at,
	chars=excluded.chars,
	n_tokens=excluded.n_tokens;
`
	if _, err := tx.ExecContext(ctx, stmt,
		d.ID,
		d.Source,
		d.CreatedAt.UTC().Format(time.RFC3339Nano),
		d.Chars,
		len(d.Tokens),
	); err != nil {
		return errors.Wrapf(err, "put doc %s", d.ID)
	}

	if err := replaceDocTokens(ctx, tx, d.ID, d.Tokens); err != nil {
		return errors.Wrapf(err, "put tokens of %s", d.ID)
	}
	return tx.Commit()
}

func replaceDocTokens(ctx context.Context, tx *sql.Tx, docID string, toks []token.Token) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM doc_tokens WHERE doc_id=?`, docID); err != nil {
		return err
	}
	if len(toks) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO doc_tokens (doc_id, seq, text, norm, start_off, end_off) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, t := range toks {
		if _, err := stmt.ExecContext(ctx, docID, i, t.Text, t.Norm, t.Start, t.End); err != nil {
			return err
		}
	}
	return nil
}

// GetDoc loads a document with its tokens in stream order.
func (s *sqliteStore) GetDoc(ctx context.Context, id string) (store.Doc, bool, error) {
	var (
		d       store.Doc
		created string
		n       int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, created_at, chars, n_tokens FROM docs WHERE id = ?`, id,
	).Scan(&d.ID, &d.Source, &created, &d.Chars, &n)
	if err == sql.ErrNoRows {
		return store.Doc{}, false, nil
	}
	if err != nil {
		return store.Doc{}, false, errors.Wrapf(err, "get doc %s", id)
	}
	d.CreatedAt = parseTime(created)

	rows, err := s.db.QueryContext(ctx,
		`SELECT text, norm, start_off, end_off FROM doc_tokens WHERE doc_id = ? ORDER BY seq`, id)
	if err != nil {
		return store.Doc{}, false, errors.Wrapf(err, "get tokens of %s", id)
	}
	defer rows.Close()

	d.Tokens = make([]token.Token, 0, n)
	for rows.Next() {
		var t token.Token
		if err := rows.Scan(&t.Text, &t.Norm, &t.Start, &t.End); err != nil {
			return store.Doc{}, false, err
		}
		d.Tokens = append(d.Tokens, t)
	}
	if err := rows.Err(); err != nil {
		return store.Doc{}, false, err
	}
	return d, true, nil
}

// ListDocs returns summaries ordered by ID descending. IDs are ULIDs, so
// this is newest first.
func (s *sqliteStore) ListDocs(ctx context.Context, limit int) ([]store.DocInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, source, created_at, chars, n_tokens
FROM docs
ORDER BY id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list docs")
	}
	defer rows.Close()

	var out []store.DocInfo
	for rows.Next() {
		var (
			info    store.DocInfo
			created string
		)
		if err := rows.Scan(&info.ID, &info.Source, &created, &info.Chars, &info.Tokens); err != nil {
			return nil, err
		}
		info.CreatedAt = parseTime(created)
		out = append(out, info)
	}
	return out, rows.Err()
}

// TopTokens counts token texts over every stored document. Ties are broken
// alphabetically.
func (s *sqliteStore) TopTokens(ctx context.Context, k int) ([]store.TokenCount, error) {
	if k <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT text, COUNT(*) AS c
FROM doc_tokens
GROUP BY text
ORDER BY c DESC, text ASC
LIMIT ?;
`, k)
	if err != nil {
		return nil, errors.Wrap(err, "top tokens")
	}
	defer rows.Close()

	var out []store.TokenCount
	for rows.Next() {
		var tc store.TokenCount
		if err := rows.Scan(&tc.Text, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
