package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Driver != StoreDriverPostgres {
		t.Fatalf("default driver = %q", cfg.Store.Driver)
	}
	if cfg.Dashboard.RecentTasks != 10 || cfg.Dashboard.RecentUsers != 10 {
		t.Fatalf("unexpected dashboard defaults: %#v", cfg.Dashboard)
	}
	if cfg.Database.URL == "" {
		t.Fatalf("database url not assembled")
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/tasks.db")
	t.Setenv("NOTIFY_WORKERS", "4")
	t.Setenv("NOTIFY_DELIVERY_TIMEOUT", "2s")
	t.Setenv("SYNC_INTERVAL_SECONDS", "15")
	t.Setenv("BUFFER_RETENTION_HOURS", "6")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Driver != StoreDriverSQLite || cfg.Store.SQLitePath != "/tmp/tasks.db" {
		t.Fatalf("unexpected store config: %#v", cfg.Store)
	}
	if cfg.Notifications.Workers != 4 || cfg.Notifications.DeliveryTimeout != 2*time.Second {
		t.Fatalf("unexpected notification config: %#v", cfg.Notifications)
	}
	if cfg.Buffer.SyncInterval != 15*time.Second {
		t.Fatalf("plain seconds not accepted: %v", cfg.Buffer.SyncInterval)
	}
	if cfg.Buffer.Retention() != 6*time.Hour {
		t.Fatalf("retention = %v", cfg.Buffer.Retention())
	}
	if cfg.Address() != "0.0.0.0:9090" {
		t.Fatalf("address = %q", cfg.Address())
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for an unknown driver")
	}
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: "5432", Name: "tasks", SSLMode: "disable"}
	if got := d.DSN(); got != "postgres://u:p@db:5432/tasks?sslmode=disable" {
		t.Fatalf("dsn = %q", got)
	}
	d.URL = "postgres://explicit"
	if got := d.DSN(); got != "postgres://explicit" {
		t.Fatalf("explicit url ignored: %q", got)
	}
}
