// Package prompt asks for missing input filenames on an interactive terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels the prompt.
var ErrAborted = errors.New("prompt aborted")

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Interactive reports whether f is a terminal the prompt can drive.
func Interactive(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

type field struct {
	label string
	input textinput.Model
}

type model struct {
	fields  []field
	focus   int
	errMsg  string
	done    bool
	aborted bool
}

func newModel(sequencePath, queryPath string) model {
	m := model{}
	for _, f := range []struct{ label, value, placeholder string }{
		{"Enter sequence filename:", sequencePath, "sequence.fa"},
		{"Enter query filename:", queryPath, "query.fa"},
	} {
		in := textinput.New()
		in.Placeholder = f.placeholder
		in.CharLimit = 4096
		in.Width = 50
		in.SetValue(f.value)
		m.fields = append(m.fields, field{label: f.label, input: in})
	}
	m.fields[0].input.Focus()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit

		case "enter":
			if strings.TrimSpace(m.fields[m.focus].input.Value()) == "" {
				m.errMsg = "a filename is required"
				return m, nil
			}
			m.errMsg = ""
			m.fields[m.focus].input.Blur()
			if m.focus == len(m.fields)-1 {
				m.done = true
				return m, tea.Quit
			}
			m.focus++
			return m, m.fields[m.focus].input.Focus()
		}
	}

	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	for i := 0; i <= m.focus; i++ {
		f := m.fields[i]
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(f.label), f.input.View())
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter to confirm, esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m model) values() (string, string) {
	return strings.TrimSpace(m.fields[0].input.Value()), strings.TrimSpace(m.fields[1].input.Value())
}

// AskPaths prompts for the sequence and query filenames, prefilled with the
// given values. It returns ErrAborted on ctrl+c or esc.
func AskPaths(in io.Reader, out io.Writer, sequencePath, queryPath string) (string, string, error) {
	p := tea.NewProgram(newModel(sequencePath, queryPath),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)
	final, err := p.Run()
	if err != nil {
		return "", "", fmt.Errorf("failed to run prompt: %w", err)
	}
	m, ok := final.(model)
	if !ok || !m.done {
		return "", "", ErrAborted
	}
	seq, query := m.values()
	return seq, query, nil
}
