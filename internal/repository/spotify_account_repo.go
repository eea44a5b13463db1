package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ueberboese/ueberboese-api/internal/service"
)

// spotifyAccountRepository stores spotify_accounts with plain SQL.
//   - spotify_user_id is the primary key; upsert is ON CONFLICT DO UPDATE
//   - an update keeps created_at and bumps version
type spotifyAccountRepository struct {
	sql *sql.DB
}

func NewSpotifyAccountRepository(sqlDB *sql.DB) service.SpotifyAccountRepository {
	return &spotifyAccountRepository{sql: sqlDB}
}

// Upsert creates or updates the account and writes the stored created_at and version back into it.
func (r *spotifyAccountRepository) Upsert(ctx context.Context, account *service.SpotifyAccount) error {
	tx, err := r.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO spotify_accounts (spotify_user_id, display_name, refresh_token, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, 0)
		ON CONFLICT (spotify_user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			refresh_token = EXCLUDED.refresh_token,
			updated_at = EXCLUDED.updated_at,
			version = spotify_accounts.version + 1
	`, account.SpotifyUserID, account.DisplayName, account.RefreshToken, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert spotify account: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		SELECT created_at, version FROM spotify_accounts WHERE spotify_user_id = $1
	`, account.SpotifyUserID).Scan(&account.CreatedAt, &account.Version)
	if err != nil {
		return fmt.Errorf("read back spotify account: %w", err)
	}
	return tx.Commit()
}

func (r *spotifyAccountRepository) Insert(ctx context.Context, account *service.SpotifyAccount) error {
	_, err := r.sql.ExecContext(ctx, `
		INSERT INTO spotify_accounts (spotify_user_id, display_name, refresh_token, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, account.SpotifyUserID, account.DisplayName, account.RefreshToken, account.CreatedAt, account.UpdatedAt, account.Version)
	return err
}

// GetByUserID returns nil, nil when no row exists.
func (r *spotifyAccountRepository) GetByUserID(ctx context.Context, spotifyUserID string) (*service.SpotifyAccount, error) {
	rows, err := r.sql.QueryContext(ctx, `
		SELECT spotify_user_id, display_name, refresh_token, created_at, updated_at, version
		FROM spotify_accounts
		WHERE spotify_user_id = $1
	`, spotifyUserID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var a service.SpotifyAccount
	if err := rows.Scan(&a.SpotifyUserID, &a.DisplayName, &a.RefreshToken, &a.CreatedAt, &a.UpdatedAt, &a.Version); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *spotifyAccountRepository) List(ctx context.Context) ([]service.SpotifyAccount, error) {
	rows, err := r.sql.QueryContext(ctx, `
		SELECT spotify_user_id, display_name, refresh_token, created_at, updated_at, version
		FROM spotify_accounts
		ORDER BY created_at DESC, spotify_user_id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []service.SpotifyAccount
	for rows.Next() {
		var a service.SpotifyAccount
		if err := rows.Scan(&a.SpotifyUserID, &a.DisplayName, &a.RefreshToken, &a.CreatedAt, &a.UpdatedAt, &a.Version); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
