package history

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the history tables. Timestamps are unix nanoseconds so
// range filters compare numerically.
const Schema = `
CREATE TABLE IF NOT EXISTS validation_runs (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    model_name TEXT NOT NULL,
    recorded_at INTEGER NOT NULL,

    valid BOOLEAN NOT NULL,
    instances INTEGER NOT NULL,
    total REAL NOT NULL,
    price_limit REAL NOT NULL,
    violations TEXT
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_validation_runs_recorded_at ON validation_runs(recorded_at);
CREATE INDEX IF NOT EXISTS idx_validation_runs_session_id ON validation_runs(session_id);
CREATE INDEX IF NOT EXISTS idx_validation_runs_valid ON validation_runs(valid);
`

// InsertSchemaVersion records the applied schema version.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const insertRecord = `
INSERT INTO validation_runs (
    id, session_id, model_name, recorded_at,
    valid, instances, total, price_limit, violations
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectColumns = `id, session_id, model_name, recorded_at, valid, instances, total, price_limit, violations`
