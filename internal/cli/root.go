package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/internal/app"
	"github.com/fastygo/taskboard/internal/config"
	"github.com/fastygo/taskboard/pkg/logger"
)

var (
	verbose bool
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "taskctl",
		Short: "Maintenance commands for the task board store",
		Long: `taskctl talks to the same store as the API server, configured through
the same environment variables (STORE_DRIVER, DATABASE_URL, SQLITE_PATH, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(trashCmd)
	rootCmd.AddCommand(migrateCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// env is what every store-backed command needs.
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	stores *app.Stores
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Encoding: "console"})
	if err != nil {
		return nil, err
	}

	stores, err := app.OpenStores(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	return &env{cfg: cfg, log: log, stores: stores}, nil
}

func (e *env) close(ctx context.Context) {
	if err := e.stores.Close(ctx); err != nil {
		e.log.Warn("store close failed", zap.Error(err))
	}
	_ = e.log.Sync()
}
