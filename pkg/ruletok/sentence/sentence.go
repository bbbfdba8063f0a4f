// Package sentence tokenizes one line of text: it splits the line on
// whitespace, tokenizes the chunks concurrently, and reassembles the
// results in source order.
package sentence

import (
	"runtime"
	"sort"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/ruletok/pkg/ruletok/chunk"
	"github.com/cognicore/ruletok/pkg/ruletok/rules"
	"github.com/cognicore/ruletok/pkg/ruletok/token"
)

// Chunk is a maximal run of non-whitespace characters. Offset is the
// character offset of its first character within the line.
type Chunk struct {
	Text   string
	Offset int
}

// Split returns the whitespace-separated chunks of line with their
// character offsets, in order.
func Split(line string) []Chunk {
	var chunks []Chunk
	start, startByte := -1, 0
	pos := 0
	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				chunks = append(chunks, Chunk{Text: line[startByte:i], Offset: start})
				start = -1
			}
		} else if start < 0 {
			start, startByte = pos, i
		}
		pos++
	}
	if start >= 0 {
		chunks = append(chunks, Chunk{Text: line[startByte:], Offset: start})
	}
	return chunks
}

// Options configures an Orchestrator.
type Options struct {
	// Workers bounds concurrent chunk tokenization. Zero means GOMAXPROCS.
	Workers int
	// Verify checks that every chunk's tokens tile it and logs violations.
	Verify bool
	Logger *zap.Logger
}

// ChunkResult is the tokenization of one chunk of a line.
type ChunkResult struct {
	Chunk
	Path             chunk.Path
	PartialException bool
	Tokens           []token.Token
}

// Orchestrator tokenizes lines against a shared rule set. It is safe for
// concurrent use.
type Orchestrator struct {
	rules   *rules.Set
	workers int
	verify  bool
	logger  *zap.Logger
}

// New returns an Orchestrator over rs.
func New(rs *rules.Set, opts Options) *Orchestrator {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Orchestrator{
		rules:   rs,
		workers: opts.Workers,
		verify:  opts.Verify,
		logger:  opts.Logger,
	}
}

// Rules returns the rule set the orchestrator tokenizes with.
func (o *Orchestrator) Rules() *rules.Set { return o.rules }

// TokenizeLine tokenizes line, shifting every offset by base. The result
// is ordered by start offset.
func (o *Orchestrator) TokenizeLine(line string, base int) []token.Token {
	results := o.Chunks(line, base)
	n := 0
	for _, r := range results {
		n += len(r.Tokens)
	}
	toks := make([]token.Token, 0, n)
	for _, r := range results {
		toks = append(toks, r.Tokens...)
	}
	return toks
}

// Chunks tokenizes line and returns the per-chunk results, ordered by
// offset. Chunk offsets are absolute, i.e. include base.
func (o *Orchestrator) Chunks(line string, base int) []ChunkResult {
	chunks := Split(line)
	if len(chunks) == 0 {
		return nil
	}
	for i := range chunks {
		chunks[i].Offset += base
	}

	if len(chunks) == 1 || o.workers == 1 {
		results := make([]ChunkResult, len(chunks))
		for i, c := range chunks {
			results[i] = o.resolve(c)
		}
		return results
	}

	out := make(chan ChunkResult, len(chunks))
	var g errgroup.Group
	g.SetLimit(o.workers)
	for _, c := range chunks {
		g.Go(func() error {
			out <- o.resolve(c)
			return nil
		})
	}
	_ = g.Wait()
	close(out)

	results := make([]ChunkResult, 0, len(chunks))
	for r := range out {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Offset < results[j].Offset })
	return results
}

func (o *Orchestrator) resolve(c Chunk) ChunkResult {
	res := chunk.Resolve(c.Text, o.rules, c.Offset)
	if res.PartialException {
		o.logger.Debug("exception does not cover chunk, splitting",
			zap.String("chunk", c.Text),
			zap.Int("offset", c.Offset))
	}
	if o.verify {
		if err := token.CheckTiling(c.Text, c.Offset, res.Tokens); err != nil {
			o.logger.Warn("tokens do not tile chunk",
				zap.String("chunk", c.Text),
				zap.Int("offset", c.Offset),
				zap.Error(err))
		}
	}
	return ChunkResult{
		Chunk:            c,
		Path:             res.Path,
		PartialException: res.PartialException,
		Tokens:           res.Tokens,
	}
}
