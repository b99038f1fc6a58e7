// Package metrics provides Prometheus metrics collection for the configurator.
//
// # Metrics Categories
//
//   - Validation Metrics: run count by result, violations by kind, duration,
//     current price against the ceiling
//   - Candidate Metrics: candidate queries and result sizes by direction
//   - Model Metrics: model loads and reloads, lint findings, feature count
//   - History Metrics: stored and pruned validation records
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	// Observe candidate queries
//	interp := interpreter.New(model).WithObserver(collector)
//
//	// Record a validation run
//	collector.RecordValidation(model.Name, report, elapsed)
//
//	// Expose the endpoint
//	http.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// All Record methods are no-ops when metrics are disabled. Model names are
// label values; once more than the cardinality limit have been seen, new
// names are aggregated under "other".
package metrics
