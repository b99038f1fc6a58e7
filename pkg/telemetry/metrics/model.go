package metrics

import (
	"mercator-hq/configurator/pkg/config"
	"mercator-hq/configurator/pkg/featuremodel/lint"

	"github.com/prometheus/client_golang/prometheus"
)

// ModelMetrics tracks feature model loading.
//
// Metrics:
//   - model_loads_total: Load attempts by model and result (success, error)
//   - model_features: Number of features in the loaded model
//   - model_lint_issues: Lint findings of the last pass by severity
type ModelMetrics struct {
	loadsTotal *prometheus.CounterVec
	features   *prometheus.GaugeVec
	lintIssues *prometheus.GaugeVec
}

// NewModelMetrics creates and registers model metrics.
func NewModelMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ModelMetrics {
	mm := &ModelMetrics{
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "model_loads_total",
				Help:      "Total number of feature model load attempts",
			},
			[]string{"model", "result"},
		),

		features: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "model_features",
				Help:      "Number of features in the loaded model",
			},
			[]string{"model"},
		),

		lintIssues: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "model_lint_issues",
				Help:      "Lint findings of the last lint pass",
			},
			[]string{"model", "severity"},
		),
	}

	registry.MustRegister(mm.loadsTotal, mm.features, mm.lintIssues)

	return mm
}

// RecordLoad records a load attempt.
func (mm *ModelMetrics) RecordLoad(model string, features int, err error) {
	if err != nil {
		mm.loadsTotal.WithLabelValues(model, "error").Inc()
		return
	}
	mm.loadsTotal.WithLabelValues(model, "success").Inc()
	mm.features.WithLabelValues(model).Set(float64(features))
}

// RecordLint sets the lint gauges from a finished pass.
func (mm *ModelMetrics) RecordLint(model string, issues *lint.IssueList) {
	var errs, warns int
	for _, issue := range issues.Issues {
		if issue.Severity == lint.SeverityError {
			errs++
		} else {
			warns++
		}
	}
	mm.lintIssues.WithLabelValues(model, string(lint.SeverityError)).Set(float64(errs))
	mm.lintIssues.WithLabelValues(model, string(lint.SeverityWarning)).Set(float64(warns))
}
