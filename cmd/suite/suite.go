package suite

import (
	"errors"

	"github.com/endorses/seqscan/internal/pkg/cmdutil"
	"github.com/endorses/seqscan/internal/pkg/compare"
	"github.com/endorses/seqscan/internal/pkg/logger"
	"github.com/endorses/seqscan/internal/pkg/signals"
	jobsuite "github.com/endorses/seqscan/internal/pkg/suite"
	"github.com/spf13/cobra"
)

var SuiteCmd = newCommand()

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suite FILE",
		Short: "Run every job of a YAML suite file",
		Long: `Run every job of a YAML suite file and report them together.

Each job names a sequence file and either a query file or an inline pattern,
optionally restricted to some algorithms. Relative paths resolve against the
directory of the suite file.

  jobs:
    - name: textbook
      sequence: data/sequence.fa
      query: data/query.fa
    - name: gata
      sequence: data/sequence.fa
      pattern: GATA
      algorithms: [kmp, optimized]

Examples:
  seqscan suite benchmarks.yaml --format table
  seqscan suite benchmarks.yaml --format json -o results.json --verify`,
		Args: cobra.ExactArgs(1),
		RunE: runSuite,
	}
	cmdutil.AddRunFlags(cmd.Flags())
	return cmd
}

func runSuite(cmd *cobra.Command, args []string) error {
	settings, err := cmdutil.LoadRunSettings(cmd.Flags())
	if err != nil {
		return err
	}

	s, err := jobsuite.ParseFile(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signals.Context(cmd.Context())
	defer stop()

	var (
		reps        []*compare.Report
		disagreeing []error
	)
	for _, job := range s.Jobs {
		loaded, err := job.Load(settings.Sequence...)
		if err != nil {
			return err
		}

		rep, err := settings.Run(ctx, loaded, job.AlgorithmList())
		if rep == nil {
			return err
		}
		if err != nil {
			disagreeing = append(disagreeing, err)
		}
		reps = append(reps, rep)
	}

	logger.Info("Suite completed",
		"suite", s.Path,
		"jobs", len(reps),
		"disagreements", len(disagreeing))

	if err := settings.Emit(cmd.OutOrStdout(), reps); err != nil {
		return err
	}
	return errors.Join(disagreeing...)
}
