package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkling"
	"github.com/aretw0/inkling/internal/cli"
	"github.com/aretw0/inkling/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the stories in INKLING_STORIES_DIR as a JSON API.
Counters live in memory unless INKLING_REDIS_ADDR is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTPPort, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("dir") {
			cfg.StoriesDir, _ = cmd.Flags().GetString("dir")
		}

		tui.PrintBanner(cmd.ErrOrStderr(), strings.TrimSpace(inkling.Version))

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return cli.Serve(ctx, cfg, logger)
	},
}

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the stories in INKLING_STORIES_DIR as MCP tools and resources.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("dir") {
			cfg.StoriesDir, _ = cmd.Flags().GetString("dir")
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return cli.ServeMCP(ctx, cfg, transport, port, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, mcpCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("dir", "stories", "Directory containing story documents")

	mcpCmd.Flags().String("dir", "stories", "Directory containing story documents")
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
