package cmdutil

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/endorses/seqscan/internal/pkg/compare"
	"github.com/endorses/seqscan/internal/pkg/matching"
	"github.com/endorses/seqscan/internal/pkg/metrics"
	"github.com/endorses/seqscan/internal/pkg/report"
	"github.com/endorses/seqscan/internal/pkg/sequence"
	"github.com/endorses/seqscan/internal/pkg/suite"
	"github.com/spf13/pflag"
)

// AddOutputFlags registers the flags that control rendering.
func AddOutputFlags(flags *pflag.FlagSet) {
	flags.StringP("format", "f", string(report.FormatText), "output format: text, table, yaml or json")
	flags.String("color", string(report.ColorAuto), "table colors: auto, always or never")
	flags.String("marker", string(sequence.DefaultMarker), "header line marker in input files")
	flags.String("max-line-length", "16M", "longest accepted input line")
}

// AddRunFlags registers the flags shared by commands that run comparisons.
func AddRunFlags(flags *pflag.FlagSet) {
	AddOutputFlags(flags)
	flags.StringSliceP("algorithms", "a", nil, "matchers to run: naive, kmp, optimized (default all)")
	flags.Bool("dense", false, "use the dense byte-class transition table")
	flags.Bool("parallel", false, "run matchers concurrently")
	flags.Bool("verify", false, "fail when matchers disagree")
	flags.Bool("offsets", false, "print every match offset")
	flags.String("metrics-textfile", "", "write Prometheus metrics to this file after the run")
	flags.StringP("output", "o", "", "write the report to this file instead of stdout")
}

// OutputSettings are the resolved rendering and input options.
type OutputSettings struct {
	Render   report.Options
	Sequence []sequence.Option
}

// LoadOutputSettings resolves the flags registered by AddOutputFlags.
func LoadOutputSettings(flags *pflag.FlagSet) (*OutputSettings, error) {
	format, err := report.ParseFormat(GetString(flags, "format", "output.format"))
	if err != nil {
		return nil, err
	}
	color, err := report.ParseColorMode(GetString(flags, "color", "output.color"))
	if err != nil {
		return nil, err
	}

	marker := GetString(flags, "marker", "search.marker")
	if len(marker) != 1 {
		return nil, fmt.Errorf("--marker must be a single byte, got %q", marker)
	}
	maxLine, err := GetSize(flags, "max-line-length", "search.max_line_length")
	if err != nil {
		return nil, err
	}

	return &OutputSettings{
		Render: report.Options{Format: format, Color: color},
		Sequence: []sequence.Option{
			sequence.WithMarker(marker[0]),
			sequence.WithMaxLineLength(int(maxLine)),
		},
	}, nil
}

// RunSettings are the resolved options of a comparison command.
type RunSettings struct {
	OutputSettings

	Compare         compare.Options
	MetricsTextfile string
	OutputFile      string
}

// LoadRunSettings resolves the flags registered by AddRunFlags.
func LoadRunSettings(flags *pflag.FlagSet) (*RunSettings, error) {
	out, err := LoadOutputSettings(flags)
	if err != nil {
		return nil, err
	}
	out.Render.ShowOffsets = GetBool(flags, "offsets", "output.offsets")

	algs, err := matching.ParseAlgorithms(GetStringSlice(flags, "algorithms", "search.algorithms"))
	if err != nil {
		return nil, err
	}

	s := &RunSettings{
		OutputSettings: *out,
		Compare: compare.Options{
			Algorithms: algs,
			Parallel:   GetBool(flags, "parallel", "search.parallel"),
			Verify:     GetBool(flags, "verify", "search.verify"),
			Dense:      GetBool(flags, "dense", "search.dense"),
		},
		MetricsTextfile: GetString(flags, "metrics-textfile", "metrics.textfile"),
		OutputFile:      GetString(flags, "output", "output.file"),
	}
	if s.MetricsTextfile != "" {
		s.Compare.Recorder = metrics.NewRecorder()
	}
	return s, nil
}

// Run compares one job. A nil algs uses the configured algorithms. A
// disagreement in verify mode returns the report and the error.
func (s *RunSettings) Run(ctx context.Context, job compare.Job, algs []matching.Algorithm) (*compare.Report, error) {
	opts := s.Compare
	if len(algs) > 0 {
		opts.Algorithms = algs
	}
	return compare.Run(ctx, job, opts)
}

// Emit renders reps to OutputFile, or to w when no file is configured, and
// exports metrics when a textfile is configured.
func (s *RunSettings) Emit(w io.Writer, reps []*compare.Report) error {
	if s.OutputFile == "" {
		if err := report.RenderAll(w, reps, s.Render); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else {
		var buf bytes.Buffer
		if err := report.RenderAll(&buf, reps, s.Render); err != nil {
			return err
		}
		if err := suite.WriteFile(s.OutputFile, buf.Bytes()); err != nil {
			return err
		}
	}

	if s.Compare.Recorder != nil {
		return s.Compare.Recorder.WriteTextfile(s.MetricsTextfile)
	}
	return nil
}
