package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/endorses/seqscan/internal/pkg/suite"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_RerunsOnChange(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	seq := filepath.Join(dir, "sequence.fa")
	query := filepath.Join(dir, "query.fa")
	require.NoError(t, os.WriteFile(seq, []byte(">s\nGATAGATA\n"), 0600))
	require.NoError(t, os.WriteFile(query, []byte(">q\nGATA\n"), 0600))

	cmd := newCommand()
	var out syncBuffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"-s", seq, "-q", query, "--debounce", "20ms", "-a", "kmp"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Number of found occurrences for KMP: 2\n")
	}, 5*time.Second, 10*time.Millisecond)

	// Give the watcher time to register before changing the query.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(query, []byte(">q\nAGAT\n"), 0600))

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Number of found occurrences for KMP: 1\n")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatch_InvalidJob(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := newCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"-p", "GATA"})
	assert.ErrorIs(t, cmd.Execute(), suite.ErrInvalidJob)
}
