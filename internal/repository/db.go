package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ueberboese/ueberboese-api/internal/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const dbPingTimeout = 5 * time.Second

// driverName maps the configured driver to the database/sql driver name.
func driverName(driver string) (string, error) {
	switch driver {
	case config.DatabaseDriverSQLite:
		return "sqlite", nil
	case config.DatabaseDriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// OpenDB opens the relational store and makes sure the schema exists.
func OpenDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	name, err := driverName(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(name, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	}
	// sqlite has a single writer; a shared in-memory database needs one open connection
	if cfg.Driver == config.DatabaseDriverSQLite && strings.Contains(cfg.DSN, "mode=memory") {
		db.SetConnMaxLifetime(0)
		db.SetMaxIdleConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	if err := EnsureSchema(ctx, db, cfg.Driver); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ProvideDB is the wire provider for *sql.DB.
func ProvideDB(cfg *config.Config) (*sql.DB, func(), error) {
	db, err := OpenDB(context.Background(), cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}
