package inspect

import (
	"errors"

	"github.com/endorses/seqscan/internal/pkg/cmdutil"
	"github.com/endorses/seqscan/internal/pkg/report"
	"github.com/endorses/seqscan/internal/pkg/sequence"
	"github.com/spf13/cobra"
)

var InspectCmd = newCommand()

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the failure function and transition table of a query",
		Long: `Print the preprocessing output of a query: its failure function and the
transition table of the KMP automaton, one row per symbol of the query.

Examples:
  seqscan inspect -p ABABCABAB
  seqscan inspect -q motif.fa --format table
  seqscan inspect -q motif.fa --format json`,
		Args: cobra.NoArgs,
		RunE: runInspect,
	}

	cmd.Flags().StringP("query", "q", "", "query file holding the pattern")
	cmd.Flags().StringP("pattern", "p", "", "inline pattern instead of a query file")
	cmd.MarkFlagsMutuallyExclusive("query", "pattern")
	cmd.MarkFlagsOneRequired("query", "pattern")
	cmdutil.AddOutputFlags(cmd.Flags())

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	settings, err := cmdutil.LoadOutputSettings(flags)
	if err != nil {
		return err
	}

	pattern, _ := flags.GetString("pattern")
	if pattern == "" {
		path, _ := flags.GetString("query")
		if path == "" {
			return errors.New("one of --query or --pattern is required")
		}
		query, err := sequence.ReadFile(path, settings.Sequence...)
		if err != nil {
			return err
		}
		pattern = string(query.Data)
	}

	a, err := report.NewAutomaton([]byte(pattern))
	if err != nil {
		return err
	}
	return report.RenderAutomaton(cmd.OutOrStdout(), a, settings.Render)
}
