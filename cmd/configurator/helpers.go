package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mercator-hq/configurator/pkg/cli"
	"mercator-hq/configurator/pkg/config"
	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/history"
)

func errorsIsInvalid(err error) bool {
	return errors.Is(err, cli.ErrInvalid)
}

// modelPath returns the --model flag or the configured model path.
func modelPath(flag string, cfg *config.Config) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg.Model.Path != "" {
		return cfg.Model.Path, nil
	}
	return "", cli.NewConfigError("model", "--model or model.path is required")
}

func newParser(cfg *config.Config) *featuremodel.Parser {
	return featuremodel.NewParser().
		WithMaxSize(cfg.Model.MaxSize).
		WithMaxDepth(cfg.Model.MaxDepth)
}

func loadModel(flag string, cfg *config.Config) (*featuremodel.Model, error) {
	path, err := modelPath(flag, cfg)
	if err != nil {
		return nil, err
	}
	return newParser(cfg).ParseFile(path)
}

// openHistory opens the configured history backend. It returns a nil
// storage when history is disabled.
func openHistory(cfg *config.HistoryConfig) (history.Storage, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Backend {
	case "memory":
		return history.NewMemoryStorage(), nil
	case "sqlite":
		if dir := filepath.Dir(cfg.SQLite.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create history directory: %w", err)
			}
		}
		return history.NewSQLiteStorage(&history.SQLiteConfig{
			Path:         cfg.SQLite.Path,
			MaxOpenConns: cfg.SQLite.MaxOpenConns,
			WALMode:      cfg.SQLite.WALMode,
			BusyTimeout:  cfg.SQLite.BusyTimeout,
		})
	default:
		return nil, cli.NewConfigError("history.backend", fmt.Sprintf("unknown backend %q", cfg.Backend))
	}
}

func formatter(format string) (cli.Formatter, error) {
	f, err := cli.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return cli.NewFormatter(f)
}
