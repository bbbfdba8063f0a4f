package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the global flags and the logger shared by every command.
type app struct {
	verbose    bool
	rulesPath  string
	configPath string
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "ruletok",
		Short: "Rule-based tokenizer with exact character offsets",
		Long: `ruletok splits text into words, punctuation, contractions, symbols and URLs
using ordered prefix, suffix and infix rules plus an exception lexicon.

Every token keeps its character offsets in the source document.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.OutputPaths = []string{"stderr"}
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return errors.Wrap(err, "initialize logger")
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&a.rulesPath, "rules", "", "Rule file (YAML); English defaults when empty")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Run settings file (YAML)")

	root.AddCommand(newTokenizeCmd(a))
	root.AddCommand(newRulesCmd(a))
	root.AddCommand(newDocsCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newTopCmd(a))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
