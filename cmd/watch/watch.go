package watch

import (
	"context"
	"fmt"

	"github.com/endorses/seqscan/internal/pkg/cmdutil"
	"github.com/endorses/seqscan/internal/pkg/compare"
	"github.com/endorses/seqscan/internal/pkg/logger"
	"github.com/endorses/seqscan/internal/pkg/signals"
	"github.com/endorses/seqscan/internal/pkg/suite"
	inputwatch "github.com/endorses/seqscan/internal/pkg/watch"
	"github.com/spf13/cobra"
)

// WatchCmd re-runs a search whenever one of its input files changes.
var WatchCmd = newCommand()

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run a search whenever its input files change",
		Long: `Run a search, then watch the sequence and query files and run it again
after every change. Bursts of writes are collapsed by --debounce. Stop with
Ctrl+C.

Examples:
  seqscan watch -s genome.fa -q motif.fa
  seqscan watch -s genome.fa -p GATTACA --format table --debounce 500ms`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().StringP("sequence", "s", "", "sequence file to search")
	cmd.Flags().StringP("query", "q", "", "query file holding the pattern")
	cmd.Flags().StringP("pattern", "p", "", "inline pattern instead of a query file")
	cmd.Flags().String("name", "", "job name shown in reports")
	cmd.Flags().Duration("debounce", inputwatch.DefaultConfig().Debounce, "quiet period before re-running")
	cmd.MarkFlagsMutuallyExclusive("query", "pattern")
	cmdutil.AddRunFlags(cmd.Flags())

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
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
	if err := job.Validate(); err != nil {
		return err
	}

	paths := []string{job.Sequence}
	if job.Query != "" {
		paths = append(paths, job.Query)
	}

	run := func(ctx context.Context) error {
		loaded, err := job.Load(settings.Sequence...)
		if err != nil {
			return err
		}
		rep, runErr := settings.Run(ctx, loaded, nil)
		if rep == nil {
			return runErr
		}
		if err := settings.Emit(cmd.OutOrStdout(), []*compare.Report{rep}); err != nil {
			return err
		}
		return runErr
	}

	w, err := inputwatch.New(paths, run, inputwatch.Config{
		Debounce: cmdutil.GetDuration(flags, "debounce", "watch.debounce"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signals.Context(cmd.Context())
	defer stop()

	if err := run(ctx); err != nil {
		logger.Warn("Initial search failed, waiting for input changes", "error", err)
	}
	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("watch stopped: %w", err)
	}
	return nil
}
