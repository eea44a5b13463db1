package handler

import (
	"github.com/ueberboese/ueberboese-api/internal/handler/admin"
)

// AdminHandlers contains the /mgmt handlers
type AdminHandlers struct {
	Mgmt    *admin.MgmtHandler
	Spotify *admin.SpotifyHandler
}

// Handlers contains all HTTP handlers
type Handlers struct {
	Proxy     *ProxyHandler
	Account   *AccountHandler
	Streaming *StreamingHandler
	Group     *GroupHandler
	Event     *EventHandler
	Device    *DeviceHandler
	Static    *StaticHandler
	Admin     *AdminHandlers
}
