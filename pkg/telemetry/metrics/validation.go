package metrics

import (
	"time"

	"mercator-hq/configurator/pkg/config"
	"mercator-hq/configurator/pkg/validation"

	"github.com/prometheus/client_golang/prometheus"
)

// ValidationMetrics tracks validation runs.
//
// Metrics:
//   - validation_runs_total: Runs by model and result (valid, invalid)
//   - validation_violations_total: Violations by kind
//   - validation_duration_seconds: Validation duration histogram
//   - configuration_price: Total price of the last validated configuration
//   - configuration_price_limit: Price ceiling of the last validated configuration
type ValidationMetrics struct {
	runsTotal       *prometheus.CounterVec
	violationsTotal *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	price           *prometheus.GaugeVec
	priceLimit      *prometheus.GaugeVec
}

// NewValidationMetrics creates and registers validation metrics.
func NewValidationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_runs_total",
				Help:      "Total number of configuration validation runs",
			},
			[]string{"model", "result"},
		),

		violationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_violations_total",
				Help:      "Total number of constraint violations reported",
			},
			[]string{"kind"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Duration of configuration validation in seconds",
				Buckets:   cfg.ValidationDurationBuckets,
			},
			[]string{"model"},
		),

		price: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "configuration_price",
				Help:      "Total price of the last validated configuration",
			},
			[]string{"model"},
		),

		priceLimit: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "configuration_price_limit",
				Help:      "Price ceiling of the last validated configuration (-1 when unlimited)",
			},
			[]string{"model"},
		),
	}

	registry.MustRegister(
		vm.runsTotal,
		vm.violationsTotal,
		vm.duration,
		vm.price,
		vm.priceLimit,
	)

	return vm
}

// RecordRun records one validation report.
func (vm *ValidationMetrics) RecordRun(model string, report *validation.Report, duration time.Duration) {
	result := "invalid"
	if report.Valid {
		result = "valid"
	}

	vm.runsTotal.WithLabelValues(model, result).Inc()
	vm.duration.WithLabelValues(model).Observe(duration.Seconds())
	vm.price.WithLabelValues(model).Set(report.Total)
	vm.priceLimit.WithLabelValues(model).Set(report.PriceLimit)

	for _, v := range report.Violations {
		vm.violationsTotal.WithLabelValues(string(v.Kind)).Inc()
	}
}
