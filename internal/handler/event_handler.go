package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
	"github.com/ueberboese/ueberboese-api/internal/service"
	"go.uber.org/zap"
)

// EventHandler accepts the usage and diagnostic reports speakers push.
type EventHandler struct {
	eventService *service.EventStorageService
}

func NewEventHandler(eventService *service.EventStorageService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Report stores one device event.
// POST /v1/scmudc/:deviceId
func (h *EventHandler) Report(c *gin.Context) {
	deviceID := c.Param("deviceId")
	body, err := readRequestBody(c)
	if err != nil {
		status, message := bodyReadStatus(err)
		response.Error(c, status, response.DefaultTitle(status), message)
		return
	}

	ev, err := h.eventService.StoreEvent(deviceID, body)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	logger.L().Debug("event.stored",
		zap.String("component", "handler.event"),
		zap.String("device_id", deviceID),
		zap.String("event_id", ev.ID),
	)
	c.Status(http.StatusOK)
}

// BmxReport acknowledges a BMX playback report. The body only goes to the event log.
// POST /bmx/:service/v1/report
func (h *EventHandler) BmxReport(c *gin.Context) {
	_, _ = readRequestBody(c)
	c.Status(http.StatusOK)
}
