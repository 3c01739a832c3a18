package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for scoring runs.
type Metrics struct {
	RunsTotal        prometheus.Counter
	RunFailures      prometheus.Counter
	SnapshotsWritten prometheus.Counter
	RunDuration      prometheus.Histogram
}

// New creates and registers the scoring metrics.
func New() *Metrics {
	return &Metrics{
		RunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sovindex_scoring_runs_total",
			Help: "Total number of scoring runs started",
		}),
		RunFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sovindex_scoring_run_failures_total",
			Help: "Total number of scoring runs that aborted without committing",
		}),
		SnapshotsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sovindex_scoring_snapshots_written_total",
			Help: "Total number of readiness score snapshots committed",
		}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sovindex_scoring_run_duration_seconds",
			Help:    "Wall-clock duration of scoring runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncRuns increments the started-runs counter.
func (m *Metrics) IncRuns() {
	if m != nil {
		m.RunsTotal.Inc()
	}
}

// IncFailures increments the aborted-runs counter.
func (m *Metrics) IncFailures() {
	if m != nil {
		m.RunFailures.Inc()
	}
}

// AddSnapshots records committed snapshots.
func (m *Metrics) AddSnapshots(n int) {
	if m != nil {
		m.SnapshotsWritten.Add(float64(n))
	}
}

// ObserveRunDuration records one run's duration.
func (m *Metrics) ObserveRunDuration(seconds float64) {
	if m != nil {
		m.RunDuration.Observe(seconds)
	}
}
