package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkling/internal/cli"
	"github.com/aretw0/inkling/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "inkling",
	Short: "Inkling inspects ink-style story content trees",
	Long: `Inkling loads story content trees from YAML or JSON documents and lets you
resolve paths, find divert landing points, cast values and serve trees over HTTP or MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides INKLING_LOG_LEVEL")
}

// setup loads the environment configuration and the logger. The --log-level
// flag overrides INKLING_LOG_LEVEL.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	logger, err := cli.CreateLogger(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
