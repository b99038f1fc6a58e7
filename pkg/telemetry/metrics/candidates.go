package metrics

import (
	"mercator-hq/configurator/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CandidateMetrics tracks candidate queries.
//
// Metrics:
//   - candidate_queries_total: Queries by direction
//   - candidate_results: Number of candidates returned, by direction
type CandidateMetrics struct {
	queriesTotal *prometheus.CounterVec
	results      *prometheus.HistogramVec
}

// NewCandidateMetrics creates and registers candidate metrics.
func NewCandidateMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CandidateMetrics {
	cm := &CandidateMetrics{
		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "candidate_queries_total",
				Help:      "Total number of candidate queries",
			},
			[]string{"direction"},
		),

		results: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "candidate_results",
				Help:      "Number of candidates returned per query",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"direction"},
		),
	}

	registry.MustRegister(cm.queriesTotal, cm.results)

	return cm
}

// Observe records a single query.
func (cm *CandidateMetrics) Observe(direction string, count int) {
	cm.queriesTotal.WithLabelValues(direction).Inc()
	cm.results.WithLabelValues(direction).Observe(float64(count))
}
