package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/flowdoc/internal/config"
	"github.com/gorewood/flowdoc/internal/envfile"
)

// newConfigCmd creates the config command.
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show resolved settings and where they come from",
		Long: `Show the settings export would use when run without flags, along with
the config file and env files consulted.`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
}

// runConfig executes the config command.
func runConfig(cmd *cobra.Command, _ []string) error {
	printer, cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"config_file": configPath(cmd),
			"env_files":   envfile.Files(config.Dir()),
			"settings":    cfg,
		})
	}

	printer.Section("Files")
	printer.KeyValue("config", configPath(cmd))
	for _, path := range envfile.Files(config.Dir()) {
		printer.KeyValue("env", path)
	}

	printer.Section("Settings")
	printer.KeyValue("input", cfg.Input)
	printer.KeyValue("output", cfg.Output)
	printer.KeyValue("overwrite", strconv.FormatBool(cfg.Overwrite))
	printer.KeyValue("log_level", cfg.LogLevel)
	return nil
}
