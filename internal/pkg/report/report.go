// Package report renders comparison results for people and machines.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/endorses/seqscan/internal/pkg/compare"
	"github.com/endorses/seqscan/internal/pkg/hostinfo"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// ErrUnknownFormat is returned for an unsupported format or color mode name.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatTable, FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ColorMode controls styling of the table format.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses auto, always or never.
func ParseColorMode(s string) (ColorMode, error) {
	switch c := ColorMode(strings.ToLower(strings.TrimSpace(s))); c {
	case ColorAuto, ColorAlways, ColorNever:
		return c, nil
	case "":
		return ColorAuto, nil
	}
	return "", fmt.Errorf("%w: color mode %q", ErrUnknownFormat, s)
}

// enabled resolves auto against w: colors only on a terminal.
func (c ColorMode) enabled(w io.Writer) bool {
	switch c {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Options controls rendering.
type Options struct {
	Format Format

	// ShowOffsets prints every occurrence offset, not just counts.
	ShowOffsets bool

	Color ColorMode
}

// Render writes a single report.
func Render(w io.Writer, rep *compare.Report, opts Options) error {
	return RenderAll(w, []*compare.Report{rep}, opts)
}

// RenderAll writes several reports. Structured formats emit one document
// holding a list; text formats separate reports with a blank line.
func RenderAll(w io.Writer, reps []*compare.Report, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		for i, rep := range reps {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := renderText(w, rep, opts); err != nil {
				return err
			}
		}
		return nil
	case FormatTable:
		for i, rep := range reps {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := renderTable(w, rep, opts); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML, FormatJSON:
		docs := make([]reportDoc, len(reps))
		for i, rep := range reps {
			docs[i] = newReportDoc(rep, opts.ShowOffsets)
		}
		var v any = docs
		if len(docs) == 1 {
			v = docs[0]
		}
		return encode(w, opts.Format, v)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(opts.Format))
}

func encode(w io.Writer, format Format, v any) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		return nil
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return enc.Close()
}

// renderText mirrors the classic console output: per matcher the optional
// offsets, occurrence and loop counts, then one timing line per matcher.
func renderText(w io.Writer, rep *compare.Report, opts Options) error {
	var b strings.Builder
	if rep.Job != "" {
		fmt.Fprintf(&b, "Job: %s\n", rep.Job)
	}
	fmt.Fprintf(&b, "Length: %d\n", rep.SequenceLength)
	for _, e := range rep.Entries {
		name := e.Algorithm.DisplayName()
		if opts.ShowOffsets {
			for _, off := range e.Result.Offsets {
				fmt.Fprintf(&b, "Found at index: %d\n", off)
			}
		}
		fmt.Fprintf(&b, "Number of found occurrences for %s: %d\n", name, e.Result.Occurrences)
		fmt.Fprintf(&b, "Number of loops for %s: %d\n\n", name, e.Result.Steps())
	}
	for _, e := range rep.Entries {
		fmt.Fprintf(&b, "Time Taken for %s: %s\n", e.Algorithm.DisplayName(), formatDuration(e.Elapsed))
	}
	if !rep.Agree {
		fmt.Fprintf(&b, "WARNING: matchers disagree: %v\n", rep.Disagreeing())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%dns (%d minutes / %d seconds)",
		d.Nanoseconds(), int64(d.Minutes()), int64(d.Seconds()))
}

type reportDoc struct {
	RunID          string        `yaml:"run_id" json:"run_id"`
	Job            string        `yaml:"job,omitempty" json:"job,omitempty"`
	Query          string        `yaml:"query,omitempty" json:"query,omitempty"`
	Sequence       string        `yaml:"sequence,omitempty" json:"sequence,omitempty"`
	PatternLength  int           `yaml:"pattern_length" json:"pattern_length"`
	SequenceLength int           `yaml:"sequence_length" json:"sequence_length"`
	StartedAt      time.Time     `yaml:"started_at" json:"started_at"`
	Agree          bool          `yaml:"agree" json:"agree"`
	Host           hostinfo.Info `yaml:"host" json:"host"`
	Results        []entryDoc    `yaml:"results" json:"results"`
}

type entryDoc struct {
	Algorithm       string `yaml:"algorithm" json:"algorithm"`
	Occurrences     int    `yaml:"occurrences" json:"occurrences"`
	Steps           int64  `yaml:"steps" json:"steps"`
	PreprocessSteps int64  `yaml:"preprocess_steps" json:"preprocess_steps"`
	ScanSteps       int64  `yaml:"scan_steps" json:"scan_steps"`
	ElapsedNS       int64  `yaml:"elapsed_ns" json:"elapsed_ns"`
	Offsets         []int  `yaml:"offsets,omitempty" json:"offsets,omitempty"`
}

func newReportDoc(rep *compare.Report, showOffsets bool) reportDoc {
	doc := reportDoc{
		RunID:          rep.RunID,
		Job:            rep.Job,
		Query:          rep.QuerySource,
		Sequence:       rep.SequenceSource,
		PatternLength:  rep.PatternLength,
		SequenceLength: rep.SequenceLength,
		StartedAt:      rep.StartedAt,
		Agree:          rep.Agree,
		Host:           rep.Host,
		Results:        make([]entryDoc, 0, len(rep.Entries)),
	}
	for _, e := range rep.Entries {
		ed := entryDoc{
			Algorithm:       string(e.Algorithm),
			Occurrences:     e.Result.Occurrences,
			Steps:           e.Result.Steps(),
			PreprocessSteps: e.Result.PreprocessSteps,
			ScanSteps:       e.Result.ScanSteps,
			ElapsedNS:       e.Elapsed.Nanoseconds(),
		}
		if showOffsets {
			ed.Offsets = e.Result.Offsets
		}
		doc.Results = append(doc.Results, ed)
	}
	return doc
}
