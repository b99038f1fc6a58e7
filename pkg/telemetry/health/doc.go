// Package health serves liveness and readiness probes for the long-running
// watch mode.
//
// Liveness only reports that the process is up. Readiness runs every
// registered check concurrently, each under its own timeout, and reports
// "degraded" with HTTP 503 when any check fails:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("model", health.ModelCheck(reloader.Current))
//	checker.RegisterCheck("history", health.StorageCheck(store))
//	health.Register(mux, checker, version, commit, buildDate)
package health
