package handler

import (
	"github.com/google/wire"
	"github.com/ueberboese/ueberboese-api/internal/handler/admin"
)

// ProvideAdminHandlers creates the AdminHandlers struct
func ProvideAdminHandlers(mgmtHandler *admin.MgmtHandler, spotifyHandler *admin.SpotifyHandler) *AdminHandlers {
	return &AdminHandlers{
		Mgmt:    mgmtHandler,
		Spotify: spotifyHandler,
	}
}

// ProvideHandlers creates the Handlers struct
func ProvideHandlers(
	proxyHandler *ProxyHandler,
	accountHandler *AccountHandler,
	streamingHandler *StreamingHandler,
	groupHandler *GroupHandler,
	eventHandler *EventHandler,
	deviceHandler *DeviceHandler,
	staticHandler *StaticHandler,
	adminHandlers *AdminHandlers,
) *Handlers {
	return &Handlers{
		Proxy:     proxyHandler,
		Account:   accountHandler,
		Streaming: streamingHandler,
		Group:     groupHandler,
		Event:     eventHandler,
		Device:    deviceHandler,
		Static:    staticHandler,
		Admin:     adminHandlers,
	}
}

// ProviderSet is the Wire provider set for all handlers
var ProviderSet = wire.NewSet(
	NewProxyHandler,
	NewAccountHandler,
	NewStreamingHandler,
	NewGroupHandler,
	NewEventHandler,
	NewDeviceHandler,
	NewStaticHandler,

	admin.NewMgmtHandler,
	admin.NewSpotifyHandler,

	ProvideAdminHandlers,
	ProvideHandlers,
)
