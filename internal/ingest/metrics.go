package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for source fetching.
type Metrics struct {
	SourcesFetched prometheus.Counter
	SourcesSkipped prometheus.Counter
}

// NewMetrics creates and registers the ingest metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		SourcesFetched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sovindex_ingest_sources_fetched_total",
			Help: "Total number of policy sources fetched successfully",
		}),
		SourcesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sovindex_ingest_sources_skipped_total",
			Help: "Total number of policy sources skipped after fetch failures",
		}),
	}
}

// IncFetched increments the fetched counter.
func (m *Metrics) IncFetched() {
	if m != nil {
		m.SourcesFetched.Inc()
	}
}

// IncSkipped increments the skipped counter.
func (m *Metrics) IncSkipped() {
	if m != nil {
		m.SourcesSkipped.Inc()
	}
}
