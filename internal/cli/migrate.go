package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskboard/internal/config"
	pgInfra "github.com/fastygo/taskboard/internal/infrastructure/postgres"
	"github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/repository/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations to the configured store",
	Long: `Apply schema migrations.

For postgres the files under MIGRATIONS_PATH are applied with golang-migrate.
For sqlite the schema is created from the store models.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(logger.Config{Level: "info", Encoding: "console"})
	if err != nil {
		return err
	}
	defer log.Sync()

	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		db, err := sqlite.Open(cfg.Store.SQLitePath, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sqlite schema ready at %s\n", cfg.Store.SQLitePath)
		return sqlite.Close(db)
	default:
		version, err := pgInfra.MigrateUp(cfg, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "postgres schema at version %d\n", version)
		return nil
	}
}
