package repository

import (
	"context"
	"database/sql"

	"github.com/ueberboese/ueberboese-api/internal/service"
)

type recentRepository struct {
	sql *sql.DB
}

func NewRecentRepository(sqlDB *sql.DB) service.RecentRepository {
	return &recentRepository{sql: sqlDB}
}

func (r *recentRepository) Create(ctx context.Context, recent *service.Recent) error {
	_, err := r.sql.ExecContext(ctx, `
		INSERT INTO recents (id, account_id, device_id, name, location, source_id, content_item_type, last_played_at, created_on, updated_on, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, recent.ID, recent.AccountID, recent.DeviceID, recent.Name, recent.Location, recent.SourceID,
		recent.ContentItemType, recent.LastPlayedAt, recent.CreatedOn, recent.UpdatedOn, recent.Version)
	return err
}
