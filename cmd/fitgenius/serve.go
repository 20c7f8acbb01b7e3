package main

import (
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/app"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with the job consumers and the scheduler",
	Long: `Start the HTTP API and WebSocket hub on the configured port, together with
the async job consumer pool and the maintenance scheduler.

Pending migrations are applied before the server starts listening.
It shuts down cleanly on SIGTERM or SIGINT.`,
	RunE: runServe,
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the job consumers and the scheduler without the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFeatures(cmd, app.Worker)
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	return runFeatures(cmd, app.Serve)
}

func runFeatures(cmd *cobra.Command, f app.Features) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return runApp(cmd.Context(), app.Options(cfg, f))
}
