package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/database"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile     string
	DatabaseURL string
	LogFormat   string
}

// NewRootCommand creates the storefront CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront API: catalog, cart and simulated checkout",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.LogFormat != "json" && opts.LogFormat != "text" {
				return fmt.Errorf("invalid log format %q: must be json or text", opts.LogFormat)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "db", "", "database URL (overrides DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "json", "log format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewCartCommand(opts))

	return cmd
}

// load resolves configuration and installs the default logger.
func (o *RootOptions) load() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.EnvFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	if o.DatabaseURL != "" {
		cfg.DatabaseURL = o.DatabaseURL
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	if o.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// withDB runs fn with an open database and closes it afterwards.
func (o *RootOptions) withDB(ctx context.Context, fn func(cfg config.Config, logger *slog.Logger, db *gorm.DB) error) error {
	cfg, logger, err := o.load()
	if err != nil {
		return err
	}
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("close database", "error", err)
		}
	}()
	return fn(cfg, logger, db)
}
