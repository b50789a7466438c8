package search

import (
	"errors"
	"os"

	"github.com/endorses/seqscan/internal/pkg/cmdutil"
	"github.com/endorses/seqscan/internal/pkg/compare"
	"github.com/endorses/seqscan/internal/pkg/prompt"
	"github.com/endorses/seqscan/internal/pkg/signals"
	"github.com/endorses/seqscan/internal/pkg/suite"
	"github.com/spf13/cobra"
)

var SearchCmd = newCommand()

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search a sequence for a query with every matcher",
		Long: `Search a sequence file for a query and compare the matchers.

The query comes from a file (--query) or inline (--pattern). Lines starting with
the header marker are skipped in both files. When a filename is missing and
stdin is a terminal, seqscan prompts for it.

Examples:
  seqscan search -s genome.fa -q motif.fa
  seqscan search -s genome.fa -p GATTACA --offsets
  seqscan search -s genome.fa -q motif.fa -a kmp,optimized --format table
  seqscan search -s genome.fa -q motif.fa --verify --metrics-textfile /var/lib/node_exporter/seqscan.prom`,
		Args: cobra.NoArgs,
		RunE: runSearch,
	}

	cmd.Flags().StringP("sequence", "s", "", "sequence file to search")
	cmd.Flags().StringP("query", "q", "", "query file holding the pattern")
	cmd.Flags().StringP("pattern", "p", "", "inline pattern instead of a query file")
	cmd.Flags().String("name", "", "job name shown in reports")
	cmd.MarkFlagsMutuallyExclusive("query", "pattern")
	cmdutil.AddRunFlags(cmd.Flags())

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	settings, err := cmdutil.LoadRunSettings(flags)
	if err != nil {
		return err
	}

	job := suite.Job{}
	job.Name, _ = flags.GetString("name")
	job.Sequence, _ = flags.GetString("sequence")
	job.Query, _ = flags.GetString("query")
	job.Pattern, _ = flags.GetString("pattern")

	if job.Pattern == "" && (job.Sequence == "" || job.Query == "") && prompt.Interactive(os.Stdin) {
		job.Sequence, job.Query, err = prompt.AskPaths(cmd.InOrStdin(), cmd.ErrOrStderr(), job.Sequence, job.Query)
		if err != nil {
			return err
		}
	}
	if err := job.Validate(); err != nil {
		return err
	}

	loaded, err := job.Load(settings.Sequence...)
	if err != nil {
		return err
	}

	ctx, stop := signals.Context(cmd.Context())
	defer stop()

	rep, runErr := settings.Run(ctx, loaded, nil)
	if rep == nil {
		return runErr
	}
	return errors.Join(settings.Emit(cmd.OutOrStdout(), []*compare.Report{rep}), runErr)
}
