// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/gains/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout, so logs only go to the configured
log file.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "gains": {
        "command": "gains",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_workout       Save a workout note and extract its data
  edit_workout      Edit a workout and re-extract
  reparse_workout   Re-run extraction on a saved workout
  delete_workout    Delete a workout and its extracted data
  list_workouts     List recent workouts
  get_workout       Get a workout with exercises, notes and metrics
  list_exercises    List known exercises
  exercise_history  Every set and note for one exercise
  list_metrics      Chronological daily metrics feed

AVAILABLE RESOURCES:

  gains://logs/recent      Recent workouts with extracted data
  gains://metrics/recent   Recent daily metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, logs, version)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
