// Package sequence loads symbol sequences from FASTA-like text files.
//
// Lines starting with the header marker are descriptive and excluded; all
// other non-blank lines are concatenated into one flat sequence.
package sequence

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// DefaultMarker introduces a header line.
	DefaultMarker = '>'

	// DefaultMaxLineLength bounds a single input line.
	DefaultMaxLineLength = 16 * 1024 * 1024
)

// ErrEmptySequence is returned when an input holds no sequence symbols.
var ErrEmptySequence = errors.New("no sequence data")

// Sequence is a loaded input.
type Sequence struct {
	// Data is the concatenation of all sequence lines.
	Data []byte

	// Headers holds header lines in input order, marker and surrounding
	// whitespace removed.
	Headers []string

	// Lines is the number of sequence lines read.
	Lines int
}

// Name returns the first header, or "" if there is none.
func (s *Sequence) Name() string {
	if len(s.Headers) == 0 {
		return ""
	}
	return s.Headers[0]
}

type options struct {
	marker        byte
	maxLineLength int
}

// Option configures reading.
type Option func(*options)

// WithMarker sets the header marker.
func WithMarker(marker byte) Option {
	return func(o *options) {
		o.marker = marker
	}
}

// WithMaxLineLength sets the longest accepted line.
func WithMaxLineLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLineLength = n
		}
	}
}

// Read reads a sequence from r.
func Read(r io.Reader, opts ...Option) (*Sequence, error) {
	o := options{marker: DefaultMarker, maxLineLength: DefaultMaxLineLength}
	for _, opt := range opts {
		opt(&o)
	}

	seq := &Sequence{}
	var data bytes.Buffer

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, o.maxLineLength)), o.maxLineLength)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == o.marker {
			seq.Headers = append(seq.Headers, string(bytes.TrimSpace(line[1:])))
			continue
		}
		data.Write(line)
		seq.Lines++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sequence: %w", err)
	}
	if data.Len() == 0 {
		return nil, ErrEmptySequence
	}

	seq.Data = data.Bytes()
	return seq, nil
}

// ReadFile reads a sequence file.
func ReadFile(path string, opts ...Option) (*Sequence, error) {
	// #nosec G304 -- Path is supplied by the operator
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sequence file: %w", err)
	}
	defer f.Close()

	seq, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seq, nil
}
