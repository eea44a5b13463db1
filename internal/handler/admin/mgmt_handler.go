package admin

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/ueberboese/ueberboese-api/internal/handler/dto"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

// MgmtHandler exposes what the emulator has observed about speakers.
type MgmtHandler struct {
	deviceService *service.DeviceService
	eventService  *service.EventStorageService
}

// NewMgmtHandler creates a new management handler
func NewMgmtHandler(deviceService *service.DeviceService, eventService *service.EventStorageService) *MgmtHandler {
	return &MgmtHandler{
		deviceService: deviceService,
		eventService:  eventService,
	}
}

// ListSpeakers lists every speaker that powered on since startup.
// The tracker is not partitioned by account, so accountId is accepted but not used for filtering.
// GET /mgmt/accounts/:accountId/speakers
func (h *MgmtHandler) ListSpeakers(c *gin.Context) {
	response.Success(c, dto.SpeakersFromService(h.deviceService.Speakers()))
}

// DeviceEvents lists the stored events of one device, oldest first.
// GET /mgmt/devices/:deviceId/events
func (h *MgmtHandler) DeviceEvents(c *gin.Context) {
	deviceID := c.Param("deviceId")
	stored := h.eventService.EventsForDevice(deviceID)

	out := dto.DeviceEventsResponse{DeviceID: deviceID, Events: make([]json.RawMessage, 0, len(stored))}
	for _, ev := range stored {
		raw, err := ev.JSON()
		if err != nil {
			_ = c.Error(err)
			response.InternalError(c, "Failed to retrieve events")
			return
		}
		out.Events = append(out.Events, raw)
	}
	response.Success(c, out)
}
