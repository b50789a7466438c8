// Package compare runs several matchers over the same inputs and checks that
// they agree on every reported offset.
package compare

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/endorses/seqscan/internal/pkg/hostinfo"
	"github.com/endorses/seqscan/internal/pkg/logger"
	"github.com/endorses/seqscan/internal/pkg/matching"
	"github.com/endorses/seqscan/internal/pkg/metrics"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrDisagreement is returned in verify mode when matchers report different
// offsets for the same inputs.
var ErrDisagreement = errors.New("matchers disagree on match offsets")

// Factory constructs a matcher. matching.New is the default.
type Factory func(alg matching.Algorithm, pattern, text []byte, opts ...matching.Option) (matching.Matcher, error)

// Job is one (pattern, text) pair to compare.
type Job struct {
	Name string

	// QuerySource and SequenceSource describe where the inputs came from,
	// typically file paths. Informational only.
	QuerySource    string
	SequenceSource string

	Pattern []byte
	Text    []byte
}

// Options controls a comparison run.
type Options struct {
	// Algorithms to run, in report order. Empty means all.
	Algorithms []matching.Algorithm

	// Parallel runs each matcher in its own goroutine. Every matcher is an
	// independent instance over the same read-only inputs.
	Parallel bool

	// Verify turns a disagreement into ErrDisagreement.
	Verify bool

	// Dense selects the dense transition table for the optimized matcher.
	Dense bool

	// Clock times searches and stamps the report. Defaults to time.Now.
	Clock func() time.Time

	// Recorder, when set, receives one observation per search.
	Recorder *metrics.Recorder

	// Factory overrides matcher construction.
	Factory Factory
}

// Entry is the outcome of one matcher.
type Entry struct {
	Algorithm matching.Algorithm
	Result    matching.Result
	Elapsed   time.Duration
}

// Report is the outcome of a comparison run.
type Report struct {
	RunID          string
	Job            string
	QuerySource    string
	SequenceSource string
	PatternLength  int
	SequenceLength int
	StartedAt      time.Time
	Host           hostinfo.Info
	Entries        []Entry
	Agree          bool
}

// Entry returns the entry for alg.
func (r *Report) Entry(alg matching.Algorithm) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Algorithm == alg {
			return e, true
		}
	}
	return Entry{}, false
}

// Disagreeing returns the algorithms whose offsets differ from the first entry.
func (r *Report) Disagreeing() []matching.Algorithm {
	if len(r.Entries) == 0 {
		return nil
	}
	var out []matching.Algorithm
	reference := r.Entries[0].Result.Offsets
	for _, e := range r.Entries[1:] {
		if !slices.Equal(reference, e.Result.Offsets) {
			out = append(out, e.Algorithm)
		}
	}
	return out
}

// Run compares the configured matchers on job.
//
// Constructor errors (an empty pattern) are returned before any search runs.
// Context cancellation is checked before each search. With Verify set, a
// disagreement returns both the report and ErrDisagreement.
func Run(ctx context.Context, job Job, opts Options) (*Report, error) {
	algs := opts.Algorithms
	if len(algs) == 0 {
		algs = matching.Algorithms()
	}
	factory := opts.Factory
	if factory == nil {
		factory = matching.New
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	matcherOpts := []matching.Option{matching.WithClock(clock)}
	if opts.Dense {
		matcherOpts = append(matcherOpts, matching.WithDenseTable())
	}

	matchers := make([]matching.Matcher, len(algs))
	for i, alg := range algs {
		m, err := factory(alg, job.Pattern, job.Text, matcherOpts...)
		if err != nil {
			return nil, fmt.Errorf("job %q: %s: %w", job.Name, alg, err)
		}
		matchers[i] = m
	}

	rep := &Report{
		RunID:          uuid.NewString(),
		Job:            job.Name,
		QuerySource:    job.QuerySource,
		SequenceSource: job.SequenceSource,
		PatternLength:  len(job.Pattern),
		SequenceLength: len(job.Text),
		StartedAt:      clock(),
		Host:           hostinfo.Detect(),
		Entries:        make([]Entry, len(matchers)),
	}

	search := func(i int) {
		m := matchers[i]
		res := m.Search()
		rep.Entries[i] = Entry{Algorithm: m.Algorithm(), Result: res, Elapsed: m.Elapsed()}
	}

	if opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range matchers {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				search(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range matchers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			search(i)
		}
	}

	log := logger.With("run_id", rep.RunID, "job", job.Name)
	for _, e := range rep.Entries {
		if opts.Recorder != nil {
			opts.Recorder.Observe(e.Algorithm, e.Result, e.Elapsed)
		}
		log.Debug("Search completed",
			"algorithm", e.Algorithm,
			"occurrences", e.Result.Occurrences,
			"steps", e.Result.Steps(),
			"elapsed", e.Elapsed)
	}

	disagreeing := rep.Disagreeing()
	rep.Agree = len(disagreeing) == 0
	if !rep.Agree {
		log.Warn("Matchers disagree on offsets",
			"reference", rep.Entries[0].Algorithm,
			"disagreeing", disagreeing)
		if opts.Verify {
			return rep, fmt.Errorf("%w: %v differ from %s", ErrDisagreement, disagreeing, rep.Entries[0].Algorithm)
		}
	}
	return rep, nil
}
