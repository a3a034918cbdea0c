package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/countdown-cli/internal/adapters/mcp"
	"github.com/xvierd/countdown-cli/internal/adapters/scheduler"
	"github.com/xvierd/countdown-cli/internal/services"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server owns a countdown and exposes tools to start, pause, resume and
reset it, apply presets, read and write notes and list past runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "🚀 Starting MCP server...")
		fmt.Fprintln(errOut, "   The server will communicate via stdio")
		fmt.Fprintln(errOut, "   Press Ctrl+C to stop")

		ctx, cancel := setupSignalHandler()
		defer cancel()

		svc, _ := newTimerService(ctx, scheduler.NewTicker())
		defer svc.Close()
		unwatch := watchExpiry(svc, app.notifier, app.log)
		defer unwatch()

		state := services.NewStateService(svc, app.notes, app.history)
		server := mcp.NewServer(state)
		app.log.Infow("mcp server starting")
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
