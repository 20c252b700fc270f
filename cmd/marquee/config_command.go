package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/adapter"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the configuration file",
	}

	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var apiKey string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(*ctx.configFlag)
			if path == "" {
				path = adapter.DefaultConfigFile()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}

			cfg := adapter.DefaultConfig()
			cfg.Metadata.APIKey = strings.TrimSpace(apiKey)
			if err := adapter.SaveConfig(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			if !cfg.HasAPIKey() {
				fmt.Fprintln(cmd.OutOrStdout(), "Set metadata.api_key (or MARQUEE_METADATA_API_KEY) to browse trending titles")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Metadata API key to store")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			apiKey := "(not set)"
			if cfg.HasAPIKey() {
				apiKey = "(set)"
			}
			rows := [][]string{
				{"metadata.api_key", apiKey},
				{"metadata.base_url", cfg.Metadata.BaseURL},
				{"metadata.image_base_url", cfg.Metadata.ImageBaseURL},
				{"metadata.language", cfg.Metadata.Language},
				{"storage.backend", cfg.Storage.Backend},
				{"storage.dir", cfg.Storage.Dir},
				{"ui.rail_width", fmt.Sprint(cfg.UI.RailWidth)},
				{"ui.toast_seconds", fmt.Sprint(cfg.UI.ToastSeconds)},
				{"logging.file", cfg.Logging.File},
				{"logging.level", cfg.Logging.Level},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Key", "Value"}, rows, nil))
			return nil
		},
	}
}
