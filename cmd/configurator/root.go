package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/configurator/pkg/cli"
	"mercator-hq/configurator/pkg/config"
	"mercator-hq/configurator/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	appLogger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "configurator",
	Short: "Configurator - feature model driven product configuration",
	Long: `Configurator checks modular product configurations against a feature model.

The feature model is a JSON tree of features. Physical features can be placed
next to or on top of each other as their slots allow; dependencies, exclusions,
alternative groups and a price ceiling decide whether a configuration is valid.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := cli.SetupSignalHandler()
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errorsIsInvalid(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults and CONFIGURATOR_* environment when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads the configuration and installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.ReloadConfig(cfgFile); err != nil {
		return cli.NewConfigError("config", err.Error())
	}
	cfg := config.MustGetConfig()

	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{
		Level:     level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	logger.SetDefault()
	appLogger = logger

	cmd.SetContext(logging.WithCommand(cmd.Context(), cmd.CommandPath()))
	return nil
}
