// Package metrics counts computations with Prometheus collectors on a
// private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tmcalc/core/melting"
	"tmcalc/internal/cmdutil"
)

// Metrics holds the collectors of one process.
type Metrics struct {
	Registry       *prometheus.Registry
	Runs           *prometheus.CounterVec
	Motifs         *prometheus.CounterVec
	Corrections    *prometheus.CounterVec
	ComputeSeconds prometheus.Histogram
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmcalc_runs_total",
				Help: "Computations by mode and outcome (ok or the error kind).",
			},
			[]string{"mode", "status"},
		),
		Motifs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmcalc_motifs_total",
				Help: "Motifs computed by kind and model.",
			},
			[]string{"kind", "method"},
		),
		Corrections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmcalc_corrections_total",
				Help: "Corrections applied by family and method.",
			},
			[]string{"kind", "method"},
		),
		ComputeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tmcalc_compute_seconds",
			Help:    "Duration of one computation.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
	}
	m.Registry.MustRegister(m.Runs, m.Motifs, m.Corrections, m.ComputeSeconds)
	return m
}

// Observe records one computation. mode labels failed runs, whose report is
// nil; it is the requested mode.
func (m *Metrics) Observe(mode melting.Mode, rep *melting.Report, err error, elapsed time.Duration) {
	m.ComputeSeconds.Observe(elapsed.Seconds())
	if err != nil {
		m.Runs.WithLabelValues(string(mode), cmdutil.Classify(err)).Inc()
		return
	}
	m.Runs.WithLabelValues(string(rep.Mode), "ok").Inc()
	for _, s := range rep.Segments {
		m.Motifs.WithLabelValues(s.Option, s.Method).Inc()
	}
	for _, c := range rep.Corrections {
		m.Corrections.WithLabelValues(string(c.Family), c.Method).Inc()
	}
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// WriteFile writes the text exposition format to path.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
