// Package history records the outcome of validation runs.
//
// Each Session.Validate call can be persisted as a Record: which session
// and model it ran against, how many instances were placed, the running
// total and ceiling, and the rendered violation lines. Records are written
// through the Storage interface, implemented by MemoryStorage (tests, the
// default when persistence is disabled) and SQLiteStorage (pure Go driver,
// WAL mode).
//
// # Querying
//
//	records, err := store.Query(ctx, &history.Query{
//		SessionID: id,
//		SortOrder: history.SortAscending,
//		Limit:     20,
//	})
//
// Retention of old records is handled by the retention subpackage.
package history
