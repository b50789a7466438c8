package report

import (
	"bytes"
	"testing"

	"github.com/endorses/seqscan/internal/pkg/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewAutomaton(t *testing.T) {
	_, err := NewAutomaton(nil)
	assert.ErrorIs(t, err, matching.ErrInvalidPattern)

	a, err := NewAutomaton([]byte("ABAB"))
	require.NoError(t, err)
	assert.Equal(t, matching.FailureFunction{0, 0, 1, 2}, a.Failure)
	assert.Equal(t, []byte("AB"), a.Table.Alphabet())
}

func TestRenderAutomaton_Text(t *testing.T) {
	a, err := NewAutomaton([]byte("ABAB"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderAutomaton(&buf, a, Options{Format: FormatText}))
	assert.Equal(t, "Failure Function\n0 0 1 2\nFailure Table\nA 1 1 1 3\nB 0 0 2 0\n", buf.String())
}

func TestRenderAutomaton_YAML(t *testing.T) {
	a, err := NewAutomaton([]byte("AABAACAABAA"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderAutomaton(&buf, a, Options{Format: FormatYAML}))

	var doc automatonDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "AABAACAABAA", doc.Pattern)
	assert.Equal(t, []int{0, 1, 0, 1, 2, 0, 1, 2, 3, 4, 5}, doc.FailureFunction)
	assert.Len(t, doc.TransitionTable, 3)
	assert.Len(t, doc.TransitionTable["C"], 11)
}

func TestRenderAutomaton_Table(t *testing.T) {
	a, err := NewAutomaton([]byte("ACA"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderAutomaton(&buf, a, Options{Format: FormatTable, Color: ColorNever}))
	out := buf.String()
	for _, want := range []string{"STATE", "pattern", "failure", "'A'", "'C'"} {
		assert.Contains(t, out, want)
	}
}
