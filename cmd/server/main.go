package main

//go:generate go run github.com/google/wire/cmd/wire

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "ueberboese-api",
		Short:        "Local stand-in for the SoundTouch streaming cloud",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: search ., ./config, /etc/ueberboese)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Import legacy spotify-account-*.json files into the database",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(cmd, configPath)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "ueberboese-api %s (commit %s, built %s)\n", Version, Commit, BuildDate)
			},
		},
	)
	return root
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

func runServe(parent context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	app, cleanup, err := initializeApplication(cfg)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	defer cleanup()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// a failed migration does not block startup
	if err := app.Startup.Run(ctx); err != nil {
		logger.L().Error("startup.tasks_failed", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server.listening",
			zap.String("addr", app.Server.Addr),
			zap.String("upstream", cfg.Upstream.BaseURL),
			zap.String("account_store", cfg.AccountStore.Backend),
			zap.String("version", Version),
		)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	logger.L().Info("server.shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
		return err
	}
	return nil
}

func runMigrate(cmd *cobra.Command, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	migration, cleanup, err := initializeMigration(cfg)
	if err != nil {
		return fmt.Errorf("initialize migration: %w", err)
	}
	defer cleanup()

	report, err := migration.Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "migrated=%d skipped=%d failed=%d\n", report.Migrated, report.Skipped, report.Failed)
	return nil
}
