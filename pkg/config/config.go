package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Model locates and bounds the feature model document.
	Model ModelConfig `yaml:"model"`

	// Pricing contains the price ceiling used by new sessions.
	Pricing PricingConfig `yaml:"pricing"`

	// History controls persistence of validation runs.
	History HistoryConfig `yaml:"history"`

	// Watch controls model hot reloading.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ModelConfig contains feature model loading configuration.
type ModelConfig struct {
	// Path is the feature model JSON file.
	Path string `yaml:"path"`

	// MaxSize is the maximum document size in bytes.
	// Default: 10MB
	MaxSize int64 `yaml:"max_size"`

	// MaxDepth is the maximum nesting depth of the feature tree.
	// Default: 64
	MaxDepth int `yaml:"max_depth"`

	// StrictLint treats lint warnings as errors.
	// Default: false
	StrictLint bool `yaml:"strict_lint"`
}

// PricingConfig contains the price ceiling configuration.
type PricingConfig struct {
	// Limit is the price ceiling. Positive values are active, -1 disables it.
	// Default: -1
	Limit float64 `yaml:"limit"`

	// AlertThreshold is the fraction of the ceiling (0.0-1.0) at which the
	// price status raises an alert. 0 disables alerting.
	// Default: 0.8
	AlertThreshold float64 `yaml:"alert_threshold"`
}

// HistoryConfig contains validation history configuration.
type HistoryConfig struct {
	// Enabled controls whether validation runs are recorded.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend.
	// Options: "memory", "sqlite"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite configures the SQLite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention configures pruning of old records.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains SQLite backend configuration.
type SQLiteConfig struct {
	// Path is the database file.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// WALMode enables Write-Ahead Logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long to wait on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains history retention configuration.
type RetentionConfig struct {
	// Days is how long records are kept. 0 keeps them forever.
	// Default: 90
	Days int `yaml:"days"`

	// MaxRecords caps the number of stored records. 0 means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// Schedule is a cron expression for automatic pruning. Empty disables it.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}

// WatchConfig contains model watcher configuration.
type WatchConfig struct {
	// Debounce is the quiet period after a file change before reloading.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress serves the metrics endpoint when set (watch mode only).
	// Default: "" (not served)
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "configurator"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "engine"
	Subsystem string `yaml:"subsystem"`

	// ValidationDurationBuckets defines histogram buckets for validation duration (seconds).
	// Default: exponential from 10µs
	ValidationDurationBuckets []float64 `yaml:"validation_duration_buckets"`
}
