package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/endorses/seqscan/internal/pkg/compare"
	"github.com/muesli/termenv"
)

// styles groups the lipgloss styles of one render, bound to the writer's
// renderer so color detection follows the destination, not os.Stdout.
type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
}

func newStyles(w io.Writer, mode ColorMode) styles {
	r := lipgloss.NewRenderer(w)
	if mode.enabled(w) {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		header: r.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("14")),
		cell:   r.NewStyle().Padding(0, 1),
		border: r.NewStyle().Foreground(lipgloss.Color("8")),
		good:   r.NewStyle().Foreground(lipgloss.Color("10")),
		bad:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// styleFunc right-aligns columns from numericFrom on.
func (s styles) styleFunc(numericFrom int) table.StyleFunc {
	return func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return s.header
		}
		if col >= numericFrom {
			return s.cell.Align(lipgloss.Right)
		}
		return s.cell
	}
}

func renderTable(w io.Writer, rep *compare.Report, opts Options) error {
	s := newStyles(w, opts.Color)

	title := fmt.Sprintf("pattern %d symbols, sequence %d symbols", rep.PatternLength, rep.SequenceLength)
	if rep.Job != "" {
		title = rep.Job + ": " + title
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.border).
		StyleFunc(s.styleFunc(1)).
		Headers("ALGORITHM", "OCCURRENCES", "STEPS", "PREPROCESS", "SCAN", "ELAPSED")
	for _, e := range rep.Entries {
		t.Row(
			e.Algorithm.DisplayName(),
			strconv.Itoa(e.Result.Occurrences),
			strconv.FormatInt(e.Result.Steps(), 10),
			strconv.FormatInt(e.Result.PreprocessSteps, 10),
			strconv.FormatInt(e.Result.ScanSteps, 10),
			e.Elapsed.String(),
		)
	}

	status := s.good.Render("all matchers agree")
	if !rep.Agree {
		status = s.bad.Render(fmt.Sprintf("matchers disagree: %v", rep.Disagreeing()))
	}

	out := lipgloss.JoinVertical(lipgloss.Left, s.title.Render(title), t.String(), status)
	if _, err := fmt.Fprintln(w, out); err != nil {
		return err
	}

	if opts.ShowOffsets {
		for _, e := range rep.Entries {
			if _, err := fmt.Fprintf(w, "%s offsets: %v\n", e.Algorithm.DisplayName(), e.Result.Offsets); err != nil {
				return err
			}
		}
	}
	return nil
}
