package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/ruletok/pkg/ruletok/config"
)

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Compile the rule set and print its table sizes",
		Long: `Compile the rule set (English defaults, or --rules FILE merged over its base)
and print how many patterns and exceptions it holds. Invalid patterns are
reported with their list and index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.Loader{RulesPath: a.rulesPath}
			comp, err := loader.Load(a.logger)
			if err != nil {
				return err
			}

			st := comp.Rules.Stats()
			out := cmd.OutOrStdout()
			source := a.rulesPath
			if source == "" {
				source = config.BaseEnglish + " (built in)"
			}
			fmt.Fprintln(out, titleStyle.Render("Rules "+source))
			row := func(label string, value any) {
				fmt.Fprintln(out, labelStyle.Render(label)+fmt.Sprint(value))
			}
			row("prefixes", st.Prefixes)
			row("suffixes", st.Suffixes)
			row("infixes", st.Infixes)
			row("literals", yesNo(st.Literals))
			row("token match", yesNo(st.TokenMatch))
			row("url match", yesNo(st.URLMatch))
			row("exceptions", st.Exceptions)
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
