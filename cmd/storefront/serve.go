package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mytheresa/storefront/app/server"
	"github.com/mytheresa/storefront/app/session"
	"github.com/mytheresa/storefront/app/telemetry"
	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/database"
)

type serveOptions struct {
	addr    string
	migrate bool
}

func NewServeCommand(root *RootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return root.withDB(ctx, func(cfg config.Config, logger *slog.Logger, db *gorm.DB) error {
				if opts.addr != "" {
					cfg.HTTPAddr = opts.addr
				}
				return serve(ctx, cfg, logger, db, opts.migrate)
			})
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply schema migrations before serving")

	return cmd
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger, db *gorm.DB, migrate bool) error {
	if migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	events, closeEvents, err := newEmitter(cfg, logger)
	if err != nil {
		return err
	}
	defer closeEvents()

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: server.NewRouter(server.Deps{
			DB:            db,
			Sessions:      &session.Provider{Secure: cfg.CookieSecure},
			Events:        events,
			Logger:        logger,
			CheckoutDelay: cfg.CheckoutDelay,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newEmitter sends events to PostHog when an API key is configured and to
// the log otherwise.
func newEmitter(cfg config.Config, logger *slog.Logger) (telemetry.Emitter, func(), error) {
	if cfg.PostHogAPIKey == "" {
		return telemetry.LogEmitter{Logger: logger}, func() {}, nil
	}
	ph, err := telemetry.NewPostHogEmitter(cfg.PostHogAPIKey, cfg.PostHogHost, logger)
	if err != nil {
		return nil, nil, err
	}
	return ph, func() {
		if err := ph.Close(); err != nil {
			logger.Warn("flush analytics", "error", err)
		}
	}, nil
}
