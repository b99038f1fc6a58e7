// Package config provides configuration management for the configurator.
//
// Configuration is read from YAML with environment variable overrides and
// validated as a whole; every invalid field is reported, not just the first.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("configurator.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("configurator.yaml")
//
//  3. Without a file, defaults plus environment:
//     cfg, err := config.LoadFromEnv()
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CONFIGURATOR_SECTION_FIELD:
//
//   - CONFIGURATOR_MODEL_PATH overrides model.path
//   - CONFIGURATOR_PRICING_LIMIT overrides pricing.limit
//   - CONFIGURATOR_HISTORY_BACKEND overrides history.backend
//   - CONFIGURATOR_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values
//  2. YAML file
//  3. Environment variables
//
// # Example
//
//	model:
//	  path: "models/wardrobe.json"
//	pricing:
//	  limit: 500
//	  alert_threshold: 0.8
//	history:
//	  enabled: true
//	  backend: "sqlite"
//	  sqlite:
//	    path: "data/history.db"
//	  retention:
//	    days: 30
//	    schedule: "0 3 * * *"
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "console"
//	  metrics:
//	    enabled: true
//	    listen_address: "127.0.0.1:9090"
package config
