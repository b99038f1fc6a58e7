// Package telemetry groups the observability packages of the configurator.
//
//   - logging: structured logging on log/slog with session and model context
//   - metrics: Prometheus collectors for validation runs, candidate queries,
//     model loads and history writes
//   - health: liveness and readiness probes for the watch command
//
// Each subpackage is used directly; this package has no code of its own.
package telemetry
