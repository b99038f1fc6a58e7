package config

import (
	"fmt"
	"sync"
)

var (
	// globalConfig holds the singleton configuration instance.
	globalConfig *Config

	// configMutex protects access to globalConfig.
	configMutex sync.RWMutex
)

// GetConfig returns the global configuration, or nil before ReloadConfig or SetConfig.
func GetConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// SetConfig replaces the global configuration. Intended for tests.
func SetConfig(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = cfg
}

// ReloadConfig loads the configuration from path with environment overrides
// and makes it the global configuration. An empty path loads defaults and
// environment only. The global instance is replaced only if loading and
// validation succeed.
func ReloadConfig(path string) error {
	cfg, err := load(path)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	configMutex.Lock()
	globalConfig = cfg
	configMutex.Unlock()

	return nil
}

// MustGetConfig returns the global configuration and panics before ReloadConfig or SetConfig.
func MustGetConfig() *Config {
	cfg := GetConfig()
	if cfg == nil {
		panic("configuration not initialized: call ReloadConfig first")
	}
	return cfg
}

func load(path string) (*Config, error) {
	if path == "" {
		return LoadFromEnv()
	}
	return LoadConfigWithEnvOverrides(path)
}
