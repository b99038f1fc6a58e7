package config

import "time"

// Default values for configuration fields.
const (
	// Model defaults
	DefaultModelMaxSize  = int64(10 * 1024 * 1024)
	DefaultModelMaxDepth = 64

	// Pricing defaults
	DefaultPriceLimit     = -1.0
	DefaultAlertThreshold = 0.8

	// History defaults
	DefaultHistoryEnabled         = true
	DefaultHistoryBackend         = "sqlite"
	DefaultHistorySQLitePath      = "data/history.db"
	DefaultHistorySQLiteMaxConns  = 4
	DefaultHistorySQLiteWALMode   = true
	DefaultHistorySQLiteBusy      = 5 * time.Second
	DefaultHistoryRetentionDays   = 90
	DefaultHistoryRetentionSched  = "0 3 * * *"
	DefaultHistoryRetentionMaxRec = int64(0)

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "console"
	DefaultMetricsEnabled   = true
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "configurator"
	DefaultMetricsSubsystem = "engine"
)

// Default returns a configuration with every default applied, including the
// boolean defaults that ApplyDefaults cannot infer from zero values.
func Default() *Config {
	cfg := &Config{
		History: HistoryConfig{
			Enabled: DefaultHistoryEnabled,
			SQLite: SQLiteConfig{
				WALMode: DefaultHistorySQLiteWALMode,
			},
			Retention: RetentionConfig{
				Days:       DefaultHistoryRetentionDays,
				MaxRecords: DefaultHistoryRetentionMaxRec,
				Schedule:   DefaultHistoryRetentionSched,
			},
		},
		Pricing: PricingConfig{
			AlertThreshold: DefaultAlertThreshold,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets defaults for fields that have zero values.
// It is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Model defaults
	if cfg.Model.MaxSize == 0 {
		cfg.Model.MaxSize = DefaultModelMaxSize
	}
	if cfg.Model.MaxDepth == 0 {
		cfg.Model.MaxDepth = DefaultModelMaxDepth
	}

	// A zero ceiling is meaningless and means "not configured".
	if cfg.Pricing.Limit == 0 {
		cfg.Pricing.Limit = DefaultPriceLimit
	}

	// History defaults
	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.SQLite.Path == "" {
		cfg.History.SQLite.Path = DefaultHistorySQLitePath
	}
	if cfg.History.SQLite.MaxOpenConns == 0 {
		cfg.History.SQLite.MaxOpenConns = DefaultHistorySQLiteMaxConns
	}
	if cfg.History.SQLite.BusyTimeout == 0 {
		cfg.History.SQLite.BusyTimeout = DefaultHistorySQLiteBusy
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
