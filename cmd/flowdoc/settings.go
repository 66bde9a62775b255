package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gorewood/flowdoc/internal/config"
	"github.com/gorewood/flowdoc/internal/logging"
	"github.com/gorewood/flowdoc/internal/output"
)

// newPrinter builds a Printer for cmd honoring --json and --color. Errors
// and warnings go to the command's stderr in human mode.
func newPrinter(cmd *cobra.Command) (*output.Printer, error) {
	mode, err := output.ParseColorMode(persistentFlag(cmd, "color"))
	if err != nil {
		output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false).WithStderr(cmd.ErrOrStderr()).Error(err)
		return nil, err
	}
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.UseColor(mode, cmd.OutOrStdout()))
	return printer.WithStderr(cmd.ErrOrStderr()), nil
}

// configPath returns the --config value or the default config file.
func configPath(cmd *cobra.Command) string {
	if path := persistentFlag(cmd, "config"); path != "" {
		return path
	}
	return config.Path()
}

// resolveConfig loads the config file and environment, then applies any
// flags the user set explicitly on cmd.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Lookup("input") != nil && flags.Changed("input") {
		cfg.Input, _ = flags.GetString("input")
	}
	if flags.Lookup("output") != nil && flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Lookup("overwrite") != nil && flags.Changed("overwrite") {
		cfg.Overwrite, _ = flags.GetBool("overwrite")
	}
	if level := persistentFlag(cmd, "log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

// newLogger builds the stderr logger for the resolved log level.
func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}
	return logging.New(level, cmd.ErrOrStderr()), nil
}

// setup resolves the printer, config and logger shared by every command,
// reporting failures through the printer.
func setup(cmd *cobra.Command) (*output.Printer, config.Config, *slog.Logger, error) {
	printer, err := newPrinter(cmd)
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		printer.Error(err)
		return nil, cfg, nil, err
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		printer.Error(err)
		return nil, cfg, nil, err
	}
	return printer, cfg, logger, nil
}
