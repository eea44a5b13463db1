package repository

import (
	"github.com/google/wire"
)

// ProviderSet is the Wire provider set for all repositories
var ProviderSet = wire.NewSet(
	ProvideDB,
	NewSpotifyAccountRepository,
	NewDeviceRepository,
	NewDeviceGroupRepository,
	NewRecentRepository,
	ProvideAccountDocumentStore,

	NewHTTPUpstream,
	NewSpotifyAuthClient,
	NewSpotifyCatalogClient,
)
