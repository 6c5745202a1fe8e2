package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pet-lost-found/internal/adapters/storage/postgres"
	"pet-lost-found/internal/bootstrap"
	"pet-lost-found/internal/domain/reports"
	"pet-lost-found/internal/platform/config"
	"pet-lost-found/internal/platform/logger"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "lostfound",
		Short:        "Herramientas de operación del motor lost & found",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (por defecto LOG_LEVEL)")

	setup := func() (config.Config, logger.Logger) {
		cfg := config.Load()
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		log := logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.LogLevel),
			Format: logger.ParseFormat(cfg.LogFormat),
			App:    cfg.AppName,
		})
		return cfg, log
	}

	root.AddCommand(
		newMigrateCmd(setup),
		newScanCmd(setup),
		newCleanupImagesCmd(setup),
	)
	return root
}

type setupFunc func() (config.Config, logger.Logger)

func newMigrateCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones de Postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log := setup()
			if cfg.DBDSN == "" {
				return errors.New("DB_DSN is required")
			}
			return postgres.Migrate(cfg.DBDSN, log)
		},
	}
}

func newScanCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Corre una pasada batch de matching sobre los lost reports activos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log := setup()
			rt, err := bootstrap.Build(cmd.Context(), cfg, log, nil)
			if err != nil {
				return err
			}
			defer rt.Close(log)

			sum, err := rt.App.Scanner.Run(cmd.Context())
			if err != nil {
				return err
			}
			if sum.Locked {
				fmt.Fprintln(cmd.OutOrStdout(), "scan skipped: another instance holds the lock")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scanned=%d created=%d skipped=%d failed=%d duration=%s\n",
				sum.Scanned, sum.Created, sum.Skipped, sum.Failed, sum.Duration)
			return nil
		},
	}
}

func newCleanupImagesCmd(setup setupFunc) *cobra.Command {
	var (
		days   int
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "cleanup-images",
		Short: "Borra las fotos de reportes resueltos hace más de N días",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days <= 0 {
				return errors.New("--days must be positive")
			}
			cfg, log := setup()
			rt, err := bootstrap.Build(cmd.Context(), cfg, log, nil)
			if err != nil {
				return err
			}
			defer rt.Close(log)

			sum, err := rt.App.Reports.CleanupImages(cmd.Context(), days, dryRun)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reports=%d images=%d deleted=%d failed=%d dry_run=%t\n",
				sum.Reports, sum.Images, sum.Deleted, sum.Failed, sum.DryRun)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", reports.DefaultCleanupDays, "antigüedad mínima (días desde resolved)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "solo contar, no borrar")
	return cmd
}
