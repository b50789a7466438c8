// Package matching locates every occurrence of a pattern in a byte sequence.
//
// Three strategies share one contract (pattern, text -> ordered start offsets):
//   - Naive: brute-force sliding comparison, O(n*m) worst case.
//   - KMP: failure-function scanning with explicit fallback, O(n+m).
//   - Optimized: a transition table turns the scan into a deterministic
//     automaton with exactly one state change per input symbol.
//
// All matchers report overlapping occurrences and must agree on offsets for
// any input pair.
package matching

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Algorithm names a matching strategy.
type Algorithm string

const (
	AlgorithmNaive     Algorithm = "naive"
	AlgorithmKMP       Algorithm = "kmp"
	AlgorithmOptimized Algorithm = "optimized"
)

var (
	// ErrInvalidPattern is returned by every constructor for an empty pattern.
	ErrInvalidPattern = errors.New("invalid pattern: pattern must not be empty")

	// ErrUnknownAlgorithm is returned when an algorithm name cannot be parsed.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// Algorithms returns all algorithms in canonical order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmNaive, AlgorithmKMP, AlgorithmOptimized}
}

// ParseAlgorithm parses an algorithm name. Matching is case-insensitive.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "naive", "brute", "bruteforce", "brute-force":
		return AlgorithmNaive, nil
	case "kmp":
		return AlgorithmKMP, nil
	case "optimized", "optimized-kmp", "table", "dfa":
		return AlgorithmOptimized, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// ParseAlgorithms parses a list of names, dropping duplicates while
// preserving order. An empty list yields all algorithms.
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	if len(names) == 0 {
		return Algorithms(), nil
	}
	seen := make(map[Algorithm]bool, len(names))
	algs := make([]Algorithm, 0, len(names))
	for _, name := range names {
		alg, err := ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		if seen[alg] {
			continue
		}
		seen[alg] = true
		algs = append(algs, alg)
	}
	return algs, nil
}

// DisplayName returns the human readable name used in reports.
func (a Algorithm) DisplayName() string {
	switch a {
	case AlgorithmNaive:
		return "Naive"
	case AlgorithmKMP:
		return "KMP"
	case AlgorithmOptimized:
		return "Optimized KMP"
	}
	return string(a)
}

// Result is the outcome of a single search. It is never mutated after
// being returned.
type Result struct {
	// Offsets holds the start offset of every occurrence, strictly ascending.
	// Overlapping occurrences are all included.
	Offsets []int

	// Occurrences is len(Offsets).
	Occurrences int

	// PreprocessSteps counts the work spent deriving the failure function and
	// transition table (loop iterations, including same-index retries).
	PreprocessSteps int64

	// ScanSteps counts scan loop iterations. For the naive matcher this is one
	// per character comparison, including the mismatching one.
	ScanSteps int64
}

// Steps returns the total step count.
func (r Result) Steps() int64 {
	return r.PreprocessSteps + r.ScanSteps
}

// Matcher is implemented by all three strategies.
type Matcher interface {
	// Algorithm identifies the strategy.
	Algorithm() Algorithm

	// Search scans the text and returns every occurrence of the pattern.
	// Repeated calls return identical results.
	Search() Result

	// Elapsed returns the wall time of the last Search, as measured by the
	// configured clock. Zero before the first search.
	Elapsed() time.Duration
}

type options struct {
	clock func() time.Time
	dense bool
}

// Option configures a matcher.
type Option func(*options)

// WithClock sets the clock used to time searches.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithDenseTable makes the optimized matcher use a dense byte-class table
// instead of the sparse per-symbol map. Results are identical.
func WithDenseTable() Option {
	return func(o *options) {
		o.dense = true
	}
}

// New constructs the matcher for alg.
func New(alg Algorithm, pattern, text []byte, opts ...Option) (Matcher, error) {
	switch alg {
	case AlgorithmNaive:
		return NewNaive(pattern, text, opts...)
	case AlgorithmKMP:
		return NewKMP(pattern, text, opts...)
	case AlgorithmOptimized:
		return NewOptimized(pattern, text, opts...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(alg))
}

// base holds the inputs and timing state shared by every matcher.
// pattern and text are read-only views supplied by the caller.
type base struct {
	pattern []byte
	text    []byte
	clock   func() time.Time
	elapsed time.Duration
}

func newBase(pattern, text []byte, opts []Option) (base, options, error) {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if len(pattern) == 0 {
		return base{}, o, ErrInvalidPattern
	}
	return base{pattern: pattern, text: text, clock: o.clock}, o, nil
}

// Elapsed returns the duration of the last search.
func (b *base) Elapsed() time.Duration {
	return b.elapsed
}

func (b *base) timed(search func() Result) Result {
	start := b.clock()
	res := search()
	b.elapsed = b.clock().Sub(start)
	return res
}

// shortCircuit handles inputs that need no scan: a pattern longer than the
// text never matches, and equal lengths reduce to a direct comparison.
func (b *base) shortCircuit() (Result, bool) {
	m, n := len(b.pattern), len(b.text)
	switch {
	case m > n:
		return Result{}, true
	case m == n:
		if bytes.Equal(b.pattern, b.text) {
			return Result{Offsets: []int{0}, Occurrences: 1}, true
		}
		return Result{}, true
	}
	return Result{}, false
}
