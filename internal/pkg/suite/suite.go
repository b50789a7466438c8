// Package suite loads YAML files describing batches of comparison jobs.
//
// A suite file looks like:
//
//	jobs:
//	  - name: textbook
//	    sequence: data/sequence.fa
//	    query: data/query.fa
//	  - name: inline
//	    sequence: data/sequence.fa
//	    pattern: GATA
//	    algorithms: [kmp, optimized]
//
// Relative paths resolve against the directory of the suite file.
package suite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/endorses/seqscan/internal/pkg/compare"
	"github.com/endorses/seqscan/internal/pkg/matching"
	"github.com/endorses/seqscan/internal/pkg/sequence"
	"gopkg.in/yaml.v3"
)

// ErrInvalidJob is returned for a job missing its inputs.
var ErrInvalidJob = errors.New("invalid suite job")

var (
	// fileLock protects atomic file writes
	fileLock sync.Mutex
)

// Suite is a parsed suite file.
type Suite struct {
	Path string `yaml:"-"`
	Jobs []Job  `yaml:"jobs"`
}

// Job names one sequence and either a query file or an inline pattern.
type Job struct {
	Name       string   `yaml:"name"`
	Sequence   string   `yaml:"sequence"`
	Query      string   `yaml:"query,omitempty"`
	Pattern    string   `yaml:"pattern,omitempty"`
	Algorithms []string `yaml:"algorithms,omitempty"`
}

// ParseFile reads and validates a suite file.
func ParseFile(path string) (*Suite, error) {
	// #nosec G304 -- Path is supplied by the operator on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse suite YAML: %w", err)
	}
	s.Path = path

	dir := filepath.Dir(path)
	for i := range s.Jobs {
		job := &s.Jobs[i]
		if job.Name == "" {
			job.Name = fmt.Sprintf("job-%d", i+1)
		}
		if err := job.Validate(); err != nil {
			return nil, fmt.Errorf("%s: job %q: %w", path, job.Name, err)
		}
		job.Sequence = resolve(dir, job.Sequence)
		if job.Query != "" {
			job.Query = resolve(dir, job.Query)
		}
	}
	return &s, nil
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate checks that the job names its inputs and known algorithms.
func (j *Job) Validate() error {
	switch {
	case j.Sequence == "":
		return fmt.Errorf("%w: missing sequence", ErrInvalidJob)
	case j.Query == "" && j.Pattern == "":
		return fmt.Errorf("%w: one of query or pattern is required", ErrInvalidJob)
	case j.Query != "" && j.Pattern != "":
		return fmt.Errorf("%w: query and pattern are mutually exclusive", ErrInvalidJob)
	}
	if _, err := matching.ParseAlgorithms(j.Algorithms); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}
	return nil
}

// AlgorithmList returns the parsed algorithms; empty means all.
func (j *Job) AlgorithmList() []matching.Algorithm {
	algs, _ := matching.ParseAlgorithms(j.Algorithms)
	return algs
}

// Load reads the job's inputs into a compare.Job.
func (j *Job) Load(opts ...sequence.Option) (compare.Job, error) {
	text, err := sequence.ReadFile(j.Sequence, opts...)
	if err != nil {
		return compare.Job{}, fmt.Errorf("job %q: %w", j.Name, err)
	}

	out := compare.Job{
		Name:           j.Name,
		SequenceSource: j.Sequence,
		Text:           text.Data,
	}
	if j.Pattern != "" {
		out.Pattern = []byte(j.Pattern)
		out.QuerySource = "inline"
		return out, nil
	}

	query, err := sequence.ReadFile(j.Query, opts...)
	if err != nil {
		return compare.Job{}, fmt.Errorf("job %q: %w", j.Name, err)
	}
	out.Pattern = query.Data
	out.QuerySource = j.Query
	return out, nil
}

// WriteFile writes data to path atomically.
func WriteFile(path string, data []byte) error {
	fileLock.Lock()
	defer fileLock.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Atomic write: write to temp file, then rename
	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp output file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile) // Cleanup temp file on error
		return fmt.Errorf("failed to rename temp output file: %w", err)
	}

	return nil
}
