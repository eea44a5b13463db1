package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ueberboese/ueberboese-api/internal/service"
)

type deviceRepository struct {
	sql *sql.DB
}

func NewDeviceRepository(sqlDB *sql.DB) service.DeviceRepository {
	return &deviceRepository{sql: sqlDB}
}

func (r *deviceRepository) GetByID(ctx context.Context, deviceID string) (*service.Device, error) {
	rows, err := r.sql.QueryContext(ctx, `
		SELECT device_id, name, account_id, ip_address, first_seen, last_seen, updated_on, version
		FROM devices
		WHERE device_id = $1
	`, deviceID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var d service.Device
	if err := rows.Scan(&d.DeviceID, &d.Name, &d.AccountID, &d.IPAddress, &d.FirstSeen, &d.LastSeen, &d.UpdatedOn, &d.Version); err != nil {
		return nil, err
	}
	return &d, nil
}

// Upsert keeps first_seen. An empty name or account_id never overwrites a stored one.
func (r *deviceRepository) Upsert(ctx context.Context, device *service.Device) error {
	tx, err := r.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO devices (device_id, name, account_id, ip_address, first_seen, last_seen, updated_on, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0)
		ON CONFLICT (device_id) DO UPDATE SET
			name = CASE WHEN EXCLUDED.name = '' THEN devices.name ELSE EXCLUDED.name END,
			account_id = CASE WHEN EXCLUDED.account_id = '' THEN devices.account_id ELSE EXCLUDED.account_id END,
			ip_address = EXCLUDED.ip_address,
			last_seen = EXCLUDED.last_seen,
			updated_on = EXCLUDED.updated_on,
			version = devices.version + 1
	`, device.DeviceID, device.Name, device.AccountID, device.IPAddress,
		device.FirstSeen, device.LastSeen, device.UpdatedOn)
	if err != nil {
		return fmt.Errorf("upsert device: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		SELECT name, account_id, first_seen, version FROM devices WHERE device_id = $1
	`, device.DeviceID).Scan(&device.Name, &device.AccountID, &device.FirstSeen, &device.Version)
	if err != nil {
		return fmt.Errorf("read back device: %w", err)
	}
	return tx.Commit()
}
