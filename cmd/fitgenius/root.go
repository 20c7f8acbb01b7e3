package main

import (
	"context"
	"fmt"
	"os"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	cfgFile  string
	logLevel string

	// cfg is populated by PersistentPreRunE and shared with all subcommands.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fitgenius",
	Short: "FitGenius Hub fitness platform backend",
	Long: `FitGenius Hub serves the fitness platform REST API and WebSocket hub,
runs the background job consumers and the periodic maintenance tasks.
Without a subcommand it behaves like "fitgenius serve".`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (YAML), defaults to "+config.DefaultConfigFile+" when present")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error), overrides the config file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Logger.Level = logLevel
		}
		return nil
	}

	rootCmd.AddCommand(serveCmd, workerCmd, migrateCmd)
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// runApp starts the fx application and blocks until it is told to stop.
// A shutdown requested with a non-zero exit code is reported as an error.
func runApp(ctx context.Context, opts fx.Option) error {
	app := fx.New(opts)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	sig := <-app.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		return err
	}
	if sig.ExitCode != 0 {
		return fmt.Errorf("shut down with exit code %d", sig.ExitCode)
	}
	return nil
}
