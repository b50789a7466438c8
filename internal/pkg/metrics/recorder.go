// Package metrics records search cost as Prometheus metrics.
//
// The CLI is short-lived, so instead of serving /metrics it writes the
// registry in text exposition format for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/endorses/seqscan/internal/pkg/matching"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "seqscan"

// Recorder owns a private registry with the search collectors.
// It is safe for concurrent use.
type Recorder struct {
	registry    *prometheus.Registry
	searches    *prometheus.CounterVec
	steps       *prometheus.CounterVec
	occurrences *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of completed searches",
			},
			[]string{"algorithm"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_steps_total",
				Help:      "Total loop iterations spent, by phase",
			},
			[]string{"algorithm", "phase"},
		),
		occurrences: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "occurrences_total",
				Help:      "Total number of pattern occurrences found",
			},
			[]string{"algorithm"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Wall time of a single search",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
			},
			[]string{"algorithm"},
		),
	}
	r.registry.MustRegister(r.searches, r.steps, r.occurrences, r.duration)
	return r
}

// Observe records one completed search.
func (r *Recorder) Observe(alg matching.Algorithm, res matching.Result, elapsed time.Duration) {
	label := string(alg)
	r.searches.WithLabelValues(label).Inc()
	r.steps.WithLabelValues(label, "preprocess").Add(float64(res.PreprocessSteps))
	r.steps.WithLabelValues(label, "scan").Add(float64(res.ScanSteps))
	r.occurrences.WithLabelValues(label).Add(float64(res.Occurrences))
	r.duration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path in text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
