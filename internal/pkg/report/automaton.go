package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/endorses/seqscan/internal/pkg/matching"
)

// Automaton is the preprocessing output for one pattern.
type Automaton struct {
	Pattern []byte
	Failure matching.FailureFunction
	Table   matching.TransitionTable
}

// NewAutomaton builds the failure function and sparse transition table of
// pattern.
func NewAutomaton(pattern []byte) (*Automaton, error) {
	if len(pattern) == 0 {
		return nil, matching.ErrInvalidPattern
	}
	failure := matching.BuildFailureFunction(pattern)
	return &Automaton{
		Pattern: pattern,
		Failure: failure,
		Table:   matching.BuildTransitionTable(pattern, failure),
	}, nil
}

type automatonDoc struct {
	Pattern         string           `yaml:"pattern" json:"pattern"`
	FailureFunction []int            `yaml:"failure_function" json:"failure_function"`
	TransitionTable map[string][]int `yaml:"transition_table" json:"transition_table"`
}

// RenderAutomaton writes the failure function and transition table.
func RenderAutomaton(w io.Writer, a *Automaton, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return renderAutomatonText(w, a)
	case FormatTable:
		return renderAutomatonTable(w, a, opts)
	case FormatYAML, FormatJSON:
		doc := automatonDoc{
			Pattern:         string(a.Pattern),
			FailureFunction: []int(a.Failure),
			TransitionTable: make(map[string][]int),
		}
		for _, c := range a.Table.Alphabet() {
			row, _ := a.Table.Row(c)
			doc.TransitionTable[string(c)] = row
		}
		return encode(w, opts.Format, doc)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(opts.Format))
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func renderAutomatonText(w io.Writer, a *Automaton) error {
	var b strings.Builder
	b.WriteString("Failure Function\n")
	b.WriteString(joinInts(a.Failure))
	b.WriteString("\nFailure Table\n")
	for _, c := range a.Table.Alphabet() {
		row, _ := a.Table.Row(c)
		fmt.Fprintf(&b, "%c %s\n", c, joinInts(row))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderAutomatonTable(w io.Writer, a *Automaton, opts Options) error {
	s := newStyles(w, opts.Color)

	headers := make([]string, 0, len(a.Pattern)+1)
	headers = append(headers, "STATE")
	for i := range a.Pattern {
		headers = append(headers, strconv.Itoa(i))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.border).
		StyleFunc(s.styleFunc(1)).
		Headers(headers...)

	symbols := make([]string, 0, len(a.Pattern)+1)
	symbols = append(symbols, "pattern")
	for _, c := range a.Pattern {
		symbols = append(symbols, string(c))
	}
	t.Row(symbols...)

	failure := []string{"failure"}
	for _, v := range a.Failure {
		failure = append(failure, strconv.Itoa(v))
	}
	t.Row(failure...)

	for _, c := range a.Table.Alphabet() {
		row, _ := a.Table.Row(c)
		cells := []string{fmt.Sprintf("%q", c)}
		for _, v := range row {
			cells = append(cells, strconv.Itoa(v))
		}
		t.Row(cells...)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}
