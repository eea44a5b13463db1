//go:build unit

package testutil

import (
	"time"

	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

// AccountXML is a full account document with a Spotify (15) and a TuneIn (25) source.
const AccountXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<account id="6921042"><accountStatus>OK</accountStatus><mode>global</mode>` +
	`<sources>` +
	`<source id="100" type="Audio"><credential type="token_version_3">rt-upstream</credential>` +
	`<sourceproviderid>15</sourceproviderid><username>spotify-user</username></source>` +
	`<source id="200" type="Audio"><credential type="token">tunein-token</credential>` +
	`<sourceproviderid>25</sourceproviderid><username/></source>` +
	`</sources></account>`

// NewTestConfig returns a minimal config for unit tests; opts override defaults.
func NewTestConfig(opts ...func(*config.Config)) *config.Config {
	cfg := &config.Config{}
	cfg.Upstream.BaseURL = "http://upstream.invalid"
	cfg.AccountStore.Backend = config.AccountStoreBackendFile
	cfg.Mgmt.Username = "admin"
	cfg.Mgmt.Password = "test-password-123"
	cfg.Spotify.RedirectURI = "ueberboese-login://spotify"
	cfg.Events.MaxPerDevice = 10
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// NewTestDevice returns a known device; opts override defaults.
func NewTestDevice(deviceID string, opts ...func(*service.Device)) *service.Device {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	d := &service.Device{
		DeviceID:  deviceID,
		Name:      "Living Room",
		AccountID: "6921042",
		IPAddress: "192.168.1.10",
		FirstSeen: now,
		LastSeen:  now,
		UpdatedOn: now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewTestSpotifyAccount returns a connected Spotify account.
func NewTestSpotifyAccount(userID, refreshToken string) service.SpotifyAccount {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return service.SpotifyAccount{
		SpotifyUserID: userID,
		DisplayName:   "Test " + userID,
		RefreshToken:  refreshToken,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}
