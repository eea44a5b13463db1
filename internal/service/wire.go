package service

import (
	"context"

	"github.com/google/wire"
	"github.com/ueberboese/ueberboese-api/internal/config"
)

// ProvideEventLogWorkerPool builds the event log pool; cleanup drains it.
func ProvideEventLogWorkerPool(cfg *config.Config) (*EventLogWorkerPool, func()) {
	pool := NewEventLogWorkerPool(cfg)
	return pool, pool.Stop
}

// StartupTasks runs once before the server accepts traffic.
type StartupTasks struct {
	migration *SpotifyAccountMigrationService
}

func NewStartupTasks(migration *SpotifyAccountMigrationService) *StartupTasks {
	return &StartupTasks{migration: migration}
}

func (t *StartupTasks) Run(ctx context.Context) error {
	_, err := t.migration.Run(ctx)
	return err
}

// ProviderSet is the Wire provider set for all services
var ProviderSet = wire.NewSet(
	NewProxyService,
	wire.Bind(new(RequestForwarder), new(*ProxyService)),
	NewSpotifyAccountService,
	wire.Bind(new(OAuthAccountDirectory), new(*SpotifyAccountService)),
	NewFullAccountService,
	NewSpotifyManagementService,
	NewSpotifyEntityService,
	NewDeviceTracker,
	NewDeviceService,
	NewDeviceGroupService,
	NewEventStorageService,
	ProvideEventLogWorkerPool,
	NewEventLogSink,
	NewRecentService,
	NewSpotifyAccountMigrationService,
	NewStartupTasks,
)
