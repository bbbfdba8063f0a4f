package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/ruletok/pkg/ruletok"
	"github.com/cognicore/ruletok/pkg/ruletok/config"
	"github.com/cognicore/ruletok/pkg/ruletok/ingest"
	"github.com/cognicore/ruletok/pkg/ruletok/store/sqlite"
)

type tokenizeFlags struct {
	workers int
	html    bool
	verify  bool
	db      string
	sample  int
	format  string
}

func newTokenizeCmd(a *app) *cobra.Command {
	f := &tokenizeFlags{}
	cmd := &cobra.Command{
		Use:   "tokenize FILE",
		Short: "Tokenize a text (or HTML) file",
		Long: `Tokenize FILE line by line and print a sample of the tokens with a summary,
or every token as TSV or JSON lines.

Examples:
  ruletok tokenize book.txt
  ruletok tokenize page.html --html --format jsonl
  ruletok tokenize notes.txt --db tokens.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, a, f, args[0])
		},
	}
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Concurrent chunk workers (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.html, "html", false, "Extract visible text from HTML input first")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "Check that tokens tile every chunk and log violations")
	cmd.Flags().StringVar(&f.db, "db", "", "Store the token stream in this SQLite database")
	cmd.Flags().IntVar(&f.sample, "sample", 0, "Number of tokens to print in summary mode (default from config, else 50)")
	cmd.Flags().StringVar(&f.format, "format", formatSummary, "Output format: summary, tsv or jsonl")
	return cmd
}

func runTokenize(cmd *cobra.Command, a *app, f *tokenizeFlags, path string) error {
	switch f.format {
	case formatSummary, formatTSV, formatJSONL:
	default:
		return errors.Errorf("unknown format %q", f.format)
	}

	flags := cmd.Flags()
	loader := config.Loader{
		RulesPath: a.rulesPath,
		RunPath:   a.configPath,
		Override: func(r *config.Run) {
			if flags.Changed("workers") {
				r.Workers = f.workers
			}
			if flags.Changed("html") {
				r.HTML = f.html
			}
			if flags.Changed("verify") {
				r.Verify = f.verify
			}
			if flags.Changed("db") {
				r.DB = f.db
			}
			if flags.Changed("sample") {
				r.Sample = f.sample
			}
		},
	}
	comp, err := loader.Load(a.logger)
	if err != nil {
		return err
	}

	ctx := cmdContext(cmd)

	start := time.Now()
	var (
		doc ingest.Document
		id  string
	)
	if comp.Run.DB != "" {
		id, doc, err = ingestToStore(ctx, a.logger, comp, path)
	} else {
		doc, err = processFile(ctx, comp.Pipeline, path)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	a.logger.Info("tokenized",
		zap.String("file", path),
		zap.Int("tokens", len(doc.Tokens)),
		zap.Duration("elapsed", elapsed))

	out := cmd.OutOrStdout()
	switch f.format {
	case formatTSV:
		return writeTSV(out, doc.Tokens)
	case formatJSONL:
		return writeJSONL(out, doc.Tokens)
	}
	printSample(out, doc.Tokens, comp.Run.Sample)
	printSummary(out, summary{
		Source:  path,
		Elapsed: elapsed,
		Doc:     doc,
		ID:      id,
		Workers: comp.Run.Workers,
	})
	return nil
}

func processFile(ctx context.Context, p *ingest.Pipeline, path string) (ingest.Document, error) {
	fh, err := os.Open(path)
	if err != nil {
		return ingest.Document{}, err
	}
	defer fh.Close()
	return p.Process(ctx, fh)
}

func ingestToStore(ctx context.Context, logger *zap.Logger, comp *config.Components, path string) (string, ingest.Document, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", ingest.Document{}, err
	}

	st, err := sqlite.Open(ctx, comp.Run.DB)
	if err != nil {
		return "", ingest.Document{}, err
	}
	engine := ruletok.New(ruletok.Options{Store: st, Pipeline: comp.Pipeline})
	defer engine.Close()

	id, doc, err := engine.Ingest(ctx, ruletok.IngestDoc{Source: path, Body: string(body)})
	if err != nil {
		return "", ingest.Document{}, err
	}
	logger.Info("stored", zap.String("id", id), zap.String("db", comp.Run.DB))
	return id, doc, nil
}
