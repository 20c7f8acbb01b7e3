package main

import (
	"context"
	"errors"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}

	a := fx.New(app.MigrateOptions(cfg))
	if err := a.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), a.StartTimeout())
	defer cancel()
	if err := a.Start(ctx); err != nil {
		return err
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), a.StopTimeout())
	defer stopCancel()
	return a.Stop(stopCtx)
}
