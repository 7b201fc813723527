// notion-mcp: Notion task database and RSS reading list MCP server.
//
// Exposes a Notion task database and a list of RSS/Atom feeds to any
// MCP host (Claude Desktop, Claude Code, Cursor, VS Code Copilot).
//
// Usage:
//
//	notion-mcp serve                          # stdio transport
//	notion-mcp serve --transport http --addr :8080
//	notion-mcp version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/notion-mcp/internal/config"
	"github.com/HendryAvila/notion-mcp/internal/logging"
	mcpserver "github.com/HendryAvila/notion-mcp/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "notion-mcp",
		Short:         "MCP server for a Notion task database and RSS reading list",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var transport, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(ctx)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("transport") {
				if err := config.ValidateTransport(transport); err != nil {
					return err
				}
				cfg.Transport = transport
			}
			if cmd.Flags().Changed("addr") {
				cfg.HTTPAddr = addr
			}

			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", config.TransportStdio, "transport to serve on (stdio or http)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address for the http transport")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "notion-mcp v%s\n", mcpserver.Version)
		},
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.String("version", mcpserver.Version),
		zap.String("transport", cfg.Transport),
		zap.String("feeds_file", cfg.FeedsFile),
	)

	s := mcpserver.New(cfg, logger)
	return mcpserver.Serve(ctx, s, cfg.Transport, cfg.HTTPAddr, logger)
}
