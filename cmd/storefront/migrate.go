package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/database"
)

func NewMigrateCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withDB(cmd.Context(), func(_ config.Config, logger *slog.Logger, db *gorm.DB) error {
				if err := database.Migrate(cmd.Context(), db); err != nil {
					return err
				}
				logger.Info("schema up to date")
				return nil
			})
		},
	}
}

func NewSeedCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalog (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withDB(cmd.Context(), func(_ config.Config, logger *slog.Logger, db *gorm.DB) error {
				if err := database.Migrate(cmd.Context(), db); err != nil {
					return err
				}
				n, err := database.Seed(cmd.Context(), db)
				if err != nil {
					return err
				}
				logger.Info("catalog seeded", "rows_created", n)
				return nil
			})
		},
	}
}
