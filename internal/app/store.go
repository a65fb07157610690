package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/internal/config"
	pgInfra "github.com/fastygo/taskboard/internal/infrastructure/postgres"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/repository/postgres"
	"github.com/fastygo/taskboard/repository/sqlite"
)

// Stores bundles the task store and user directory of the configured driver.
type Stores struct {
	Driver string
	Tasks  repository.TaskRepository
	Users  repository.UserRepository
	Ping   func(ctx context.Context) error
	Close  func(ctx context.Context) error
}

// OpenStores connects to the configured backend, running Postgres migrations
// first when they are enabled.
func OpenStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		db, err := sqlite.Open(cfg.Store.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &Stores{
			Driver: cfg.Store.Driver,
			Tasks:  sqlite.NewTaskRepository(db),
			Users:  sqlite.NewUserRepository(db),
			Ping:   sqlDB.PingContext,
			Close: func(context.Context) error {
				return sqlite.Close(db)
			},
		}, nil

	case config.StoreDriverPostgres:
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Driver: cfg.Store.Driver,
			Tasks:  postgres.NewTaskRepository(pool),
			Users:  postgres.NewUserRepository(pool),
			Ping:   pool.Ping,
			Close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
