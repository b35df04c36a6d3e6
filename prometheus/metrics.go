// Package prometheus records pipeline metrics with the Prometheus client
// and exports them to a node-exporter textfile.
package prometheus

import (
	"github.com/fwojciec/gradscout/crawl"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects counters and a score histogram for one process.
type Metrics struct {
	registry *prometheus.Registry

	CandidatesTotal *prometheus.CounterVec
	QueriesTotal    *prometheus.CounterVec
	Scores          prometheus.Histogram
	Rows            prometheus.Gauge
	LastRunSeconds  prometheus.Gauge
}

// NewMetrics creates metrics registered on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CandidatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gradscout_candidates_total",
				Help: "Candidate pages processed, by outcome.",
			},
			[]string{"outcome"},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gradscout_queries_total",
				Help: "Search queries run, by status.",
			},
			[]string{"status"},
		),
		Scores: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gradscout_candidate_score",
				Help:    "Scores of candidates that reached scoring.",
				Buckets: prometheus.LinearBuckets(0.5, 0.5, 10),
			},
		),
		Rows: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gradscout_result_rows",
				Help: "Result rows produced by the last run.",
			},
		),
		LastRunSeconds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gradscout_last_run_timestamp_seconds",
				Help: "Unix time the last run finished.",
			},
		),
	}
	m.registry.MustRegister(m.CandidatesTotal, m.QueriesTotal, m.Scores, m.Rows, m.LastRunSeconds)
	return m
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records a progress event. It is a crawl.ProgressFunc.
func (m *Metrics) Observe(e crawl.ProgressEvent) {
	switch e.Type {
	case crawl.ProgressScored:
		m.CandidatesTotal.WithLabelValues(string(crawl.OutcomeScored)).Inc()
		m.Scores.Observe(e.Score)
	case crawl.ProgressSkipped:
		m.CandidatesTotal.WithLabelValues(string(e.Outcome)).Inc()
	case crawl.ProgressQuery:
		m.QueriesTotal.WithLabelValues("ok").Inc()
	case crawl.ProgressQueryFailed:
		m.QueriesTotal.WithLabelValues("failed").Inc()
	}
}

// WriteTextfile writes the metrics in text exposition format to path,
// for collection by the node exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
