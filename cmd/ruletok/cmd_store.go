package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cognicore/ruletok/pkg/ruletok"
	"github.com/cognicore/ruletok/pkg/ruletok/store/sqlite"
)

var errNoDB = errors.New("--db required")

// openEngine opens the token database for the read-only commands. The
// engine has no pipeline; it is only used for lookups.
func openEngine(ctx context.Context, db string) (*ruletok.Engine, error) {
	if db == "" {
		return nil, errNoDB
	}
	st, err := sqlite.Open(ctx, db)
	if err != nil {
		return nil, err
	}
	return ruletok.New(ruletok.Options{Store: st}), nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newDocsCmd(a *app) *cobra.Command {
	var (
		db    string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "List stored documents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			engine, err := openEngine(ctx, db)
			if err != nil {
				return err
			}
			defer engine.Close()

			docs, err := engine.Docs(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range docs {
				fmt.Fprintf(out, "%s  %s  %s tokens  %s\n",
					d.ID,
					mutedStyle.Render(humanize.Time(d.CreatedAt)),
					humanize.Comma(int64(d.Tokens)),
					d.Source)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite database (required)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum documents to list")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var (
		db     string
		format string
	)
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a stored document's tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			engine, err := openEngine(ctx, db)
			if err != nil {
				return err
			}
			defer engine.Close()

			toks, err := engine.Tokens(ctx, args[0])
			if err != nil {
				return err
			}
			if format == formatJSONL {
				return writeJSONL(cmd.OutOrStdout(), toks)
			}
			return writeTSV(cmd.OutOrStdout(), toks)
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite database (required)")
	cmd.Flags().StringVar(&format, "format", formatTSV, "Output format: tsv or jsonl")
	return cmd
}

func newTopCmd(a *app) *cobra.Command {
	var (
		db string
		k  int
	)
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the most frequent token texts across stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			engine, err := openEngine(ctx, db)
			if err != nil {
				return err
			}
			defer engine.Close()

			top, err := engine.TopTokens(ctx, k)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, tc := range top {
				fmt.Fprintf(out, "%3d. %-20s %s\n", i+1, tc.Text, humanize.Comma(tc.Count))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite database (required)")
	cmd.Flags().IntVarP(&k, "k", "k", 20, "Number of tokens")
	return cmd
}
