package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ueberboese/ueberboese-api/internal/service"
)

// deviceGroupRepository stores device_groups with plain SQL.
// Membership is looked up by (account_id, left/right_device_id); both columns are indexed.
type deviceGroupRepository struct {
	sql *sql.DB
}

func NewDeviceGroupRepository(sqlDB *sql.DB) service.DeviceGroupRepository {
	return &deviceGroupRepository{sql: sqlDB}
}

func (r *deviceGroupRepository) FindByMember(ctx context.Context, accountID, deviceID string) (*service.DeviceGroup, error) {
	rows, err := r.sql.QueryContext(ctx, `
		SELECT id, account_id, master_device_id, name, left_device_id, right_device_id, created_on, updated_on, version
		FROM device_groups
		WHERE account_id = $1 AND (left_device_id = $2 OR right_device_id = $2)
		ORDER BY id
		LIMIT 1
	`, accountID, deviceID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var g service.DeviceGroup
	if err := rows.Scan(&g.ID, &g.AccountID, &g.MasterDeviceID, &g.Name, &g.LeftDeviceID, &g.RightDeviceID,
		&g.CreatedOn, &g.UpdatedOn, &g.Version); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *deviceGroupRepository) Create(ctx context.Context, group *service.DeviceGroup) error {
	err := r.sql.QueryRowContext(ctx, `
		INSERT INTO device_groups (account_id, master_device_id, name, left_device_id, right_device_id, created_on, updated_on, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, group.AccountID, group.MasterDeviceID, group.Name, group.LeftDeviceID, group.RightDeviceID,
		group.CreatedOn, group.UpdatedOn, group.Version).Scan(&group.ID)
	if err != nil {
		return fmt.Errorf("insert device group: %w", err)
	}
	return nil
}
