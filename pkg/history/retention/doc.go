// Package retention prunes old validation history.
//
// Pruning runs in two phases: records older than RetentionDays are removed,
// then the oldest records beyond MaxRecords. Either phase is disabled by a
// zero value. A Scheduler runs the Pruner on a standard five-field cron
// expression:
//
//	pruner := retention.NewPruner(store, &retention.Config{
//		RetentionDays: 30,
//		PruneSchedule: "0 3 * * *",
//	})
//	if err := pruner.Scheduler().Start(ctx); err != nil {
//		return err
//	}
package retention
