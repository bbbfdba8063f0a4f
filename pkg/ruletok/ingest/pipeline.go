// Package ingest drives the tokenizer over whole documents, one line at a
// time, keeping the running character offset that makes token offsets
// absolute.
package ingest

import (
	"bufio"
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cognicore/ruletok/pkg/ruletok/chunk"
	"github.com/cognicore/ruletok/pkg/ruletok/sentence"
	"github.com/cognicore/ruletok/pkg/ruletok/token"
)

// Options configures a Pipeline.
type Options struct {
	// HTML extracts visible text from the input before tokenizing.
	HTML   bool
	Logger *zap.Logger
}

// Pipeline runs documents through the line orchestrator:
// input → (html extraction) → lines → chunk tokenization → token stream
type Pipeline struct {
	orch   *sentence.Orchestrator
	html   bool
	logger *zap.Logger
}

// NewPipeline creates a pipeline over orch.
func NewPipeline(orch *sentence.Orchestrator, opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Pipeline{orch: orch, html: opts.HTML, logger: opts.Logger}
}

// Orchestrator returns the line orchestrator the pipeline drives.
func (p *Pipeline) Orchestrator() *sentence.Orchestrator { return p.orch }

// Stats summarizes a processed document.
type Stats struct {
	Lines  int
	Chunks int
	Tokens int
	// Paths counts chunks by the step that resolved them.
	Paths map[chunk.Path]int
	// PartialExceptions counts exception entries that did not cover their chunk.
	PartialExceptions int
}

// Document is the token stream of one input.
type Document struct {
	Tokens []token.Token
	// Chars is the total character count of the input, terminators included.
	Chars int
	Stats Stats
}

// Process reads r to the end and tokenizes it line by line. Lines end at
// "\n"; a preceding "\r" is dropped from the line but still counted in the
// offset. ctx is checked between lines.
func (p *Pipeline) Process(ctx context.Context, r io.Reader) (Document, error) {
	if p.html {
		text, err := ExtractText(r)
		if err != nil {
			return Document{}, err
		}
		r = strings.NewReader(text)
	}

	doc := Document{Stats: Stats{Paths: make(map[chunk.Path]int, chunk.NumPaths)}}
	br := bufio.NewReader(r)
	cur := lineCursor{}
	for {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}
		raw, err := br.ReadString('\n')
		if raw != "" {
			p.processLine(&doc, &cur, raw)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Document{}, errors.Wrapf(err, "read line %d", cur.line+1)
		}
	}

	doc.Chars = cur.offset
	doc.Stats.Lines = cur.line
	doc.Stats.Tokens = len(doc.Tokens)
	p.logger.Debug("document processed",
		zap.Int("lines", doc.Stats.Lines),
		zap.Int("chunks", doc.Stats.Chunks),
		zap.Int("tokens", doc.Stats.Tokens),
		zap.Int("chars", doc.Chars))
	return doc, nil
}

// ProcessString tokenizes text.
func (p *Pipeline) ProcessString(text string) Document {
	// Reading from a string cannot fail and the context never ends.
	doc, _ := p.Process(context.Background(), strings.NewReader(text))
	return doc
}

// lineCursor is the driver's running position: the absolute character
// offset of the next line and the number of lines seen.
type lineCursor struct {
	offset int
	line   int
}

func (p *Pipeline) processLine(doc *Document, cur *lineCursor, raw string) {
	line := strings.TrimSuffix(raw, "\n")
	line = strings.TrimSuffix(line, "\r")

	for _, res := range p.orch.Chunks(line, cur.offset) {
		doc.Tokens = append(doc.Tokens, res.Tokens...)
		doc.Stats.Chunks++
		doc.Stats.Paths[res.Path]++
		if res.PartialException {
			doc.Stats.PartialExceptions++
		}
	}

	cur.offset += utf8.RuneCountInString(raw)
	cur.line++
}
