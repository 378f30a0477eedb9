// ABOUTME: CLI command for starting the HTTP API server.
// ABOUTME: Serves the JSON API until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/gains/internal/api"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Start the JSON HTTP API.

ENDPOINTS:

  GET    /health
  GET    /api/v1/logs?limit=N
  POST   /api/v1/logs                     {"session_name", "date", "raw_text"}
  GET    /api/v1/logs/{id}
  PUT    /api/v1/logs/{id}
  DELETE /api/v1/logs/{id}
  POST   /api/v1/logs/{id}/reparse
  GET    /api/v1/exercises
  GET    /api/v1/exercises/{name}/history
  GET    /api/v1/metrics?name=X&limit=N

The port defaults to api_port from the config file (8088).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := cfg.GetAPIPort()
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return api.NewServer(repo, logs, port, logger).Start(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8088, "listen port")
	rootCmd.AddCommand(serveCmd)
}
