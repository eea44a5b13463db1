package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ueberboese/ueberboese-api/internal/config"
)

type schemaDialect struct {
	timestamp string
	serialPK  string
}

var schemaDialects = map[string]schemaDialect{
	config.DatabaseDriverSQLite:   {timestamp: "TIMESTAMP", serialPK: "INTEGER PRIMARY KEY AUTOINCREMENT"},
	config.DatabaseDriverPostgres: {timestamp: "TIMESTAMPTZ", serialPK: "BIGSERIAL PRIMARY KEY"},
}

func schemaStatements(d schemaDialect) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS spotify_accounts (
			spotify_user_id TEXT PRIMARY KEY,
			display_name    TEXT NOT NULL DEFAULT '',
			refresh_token   TEXT NOT NULL,
			created_at      %[1]s NOT NULL,
			updated_at      %[1]s NOT NULL,
			version         BIGINT NOT NULL DEFAULT 0
		)`, d.timestamp),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS devices (
			device_id  TEXT PRIMARY KEY,
			name       TEXT NOT NULL DEFAULT '',
			account_id TEXT NOT NULL DEFAULT '',
			ip_address TEXT NOT NULL DEFAULT '',
			first_seen %[1]s NOT NULL,
			last_seen  %[1]s NOT NULL,
			updated_on %[1]s NOT NULL,
			version    BIGINT NOT NULL DEFAULT 0
		)`, d.timestamp),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS device_groups (
			id               %[2]s,
			account_id       TEXT NOT NULL,
			master_device_id TEXT NOT NULL DEFAULT '',
			name             TEXT NOT NULL DEFAULT '',
			left_device_id   TEXT NOT NULL,
			right_device_id  TEXT NOT NULL,
			created_on       %[1]s NOT NULL,
			updated_on       %[1]s NOT NULL,
			version          BIGINT NOT NULL DEFAULT 0
		)`, d.timestamp, d.serialPK),
		`CREATE INDEX IF NOT EXISTS idx_device_groups_left ON device_groups (account_id, left_device_id)`,
		`CREATE INDEX IF NOT EXISTS idx_device_groups_right ON device_groups (account_id, right_device_id)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS recents (
			id                TEXT PRIMARY KEY,
			account_id        TEXT NOT NULL,
			device_id         TEXT NOT NULL,
			name              TEXT NOT NULL DEFAULT '',
			location          TEXT NOT NULL DEFAULT '',
			source_id         TEXT NOT NULL DEFAULT '',
			content_item_type TEXT NOT NULL DEFAULT '',
			last_played_at    TEXT NOT NULL DEFAULT '',
			created_on        %[1]s NOT NULL,
			updated_on        %[1]s NOT NULL,
			version           BIGINT NOT NULL DEFAULT 0
		)`, d.timestamp),
	}
}

// EnsureSchema creates missing tables and indexes. It is idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string) error {
	d, ok := schemaDialects[driver]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", driver)
	}
	for _, stmt := range schemaStatements(d) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
