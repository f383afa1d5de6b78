package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"stitchcms/internal/config"
	"stitchcms/pkg/bus"
	"stitchcms/pkg/db"
	"stitchcms/services/api"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stitchctl",
		Short:         "Utility for managing a Stitch CMS deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSeedCommand())
	cmd.AddCommand(newRemindCommand())
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func loadConfig(ctx context.Context) (config.Config, error) {
	_ = godotenv.Load()
	return config.Load(ctx)
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			pool, err := db.Open(ctx, cfg.DBDSN)
			if err != nil {
				return err
			}
			defer pool.Close()

			return db.Migrate(ctx, pool)
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the baseline admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			orm, err := db.Connect(ctx, cfg.DBDSN)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(orm) }()

			return db.Seed(ctx, orm)
		},
	}
}

func newRemindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Queue reminder emails for events whose schedule hits today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			orm, err := db.Connect(ctx, cfg.DBDSN)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(orm) }()

			msgBus, err := bus.New(cfg.NATSURL)
			if err != nil {
				return err
			}
			defer msgBus.Close()

			invites := api.NewInvitationService(&api.Store{ORM: orm, Bus: msgBus})
			queued, err := invites.EnqueueDueReminders(ctx, time.Now().UTC())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "queued %d reminder(s)\n", queued)
			return nil
		},
	}
}
