package metrics

import (
	"mercator-hq/configurator/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// HistoryMetrics tracks validation history persistence.
//
// Metrics:
//   - history_writes_total: Record writes by backend and result
//   - history_pruned_total: Records removed by retention
type HistoryMetrics struct {
	writesTotal *prometheus.CounterVec
	prunedTotal prometheus.Counter
}

// NewHistoryMetrics creates and registers history metrics.
func NewHistoryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HistoryMetrics {
	hm := &HistoryMetrics{
		writesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_writes_total",
				Help:      "Total number of validation history writes",
			},
			[]string{"backend", "result"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_pruned_total",
				Help:      "Total number of validation history records removed by retention",
			},
		),
	}

	registry.MustRegister(hm.writesTotal, hm.prunedTotal)

	return hm
}

// RecordStore records a write.
func (hm *HistoryMetrics) RecordStore(backend string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	hm.writesTotal.WithLabelValues(backend, result).Inc()
}

// RecordPrune adds removed records to the pruned counter.
func (hm *HistoryMetrics) RecordPrune(removed int64) {
	if removed > 0 {
		hm.prunedTotal.Add(float64(removed))
	}
}
