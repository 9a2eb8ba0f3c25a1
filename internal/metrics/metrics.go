package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	MatchesSubmitted prometheus.Counter
	MatchesConfirmed prometheus.Counter
	MatchesDenied    prometheus.Counter
	RatingDelta      prometheus.Histogram
}

// New creates and registers the application metrics on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		MatchesSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pongelo_matches_submitted_total",
			Help: "Matches submitted for confirmation.",
		}),
		MatchesConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pongelo_matches_confirmed_total",
			Help: "Matches confirmed and applied to ratings.",
		}),
		MatchesDenied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pongelo_matches_denied_total",
			Help: "Matches denied by the opposing player.",
		}),
		RatingDelta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pongelo_rating_delta",
			Help:    "Absolute rating change applied per confirmed match.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	registry.MustRegister(m.MatchesSubmitted, m.MatchesConfirmed, m.MatchesDenied, m.RatingDelta)
	return m
}

// Handler returns an HTTP handler serving the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
