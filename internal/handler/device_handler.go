package handler

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ueberboese/ueberboese-api/internal/handler/dto"
	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
	"github.com/ueberboese/ueberboese-api/internal/service"
	"go.uber.org/zap"
)

// DeviceHandler notes speakers as they boot and hands the request on to the vendor cloud.
type DeviceHandler struct {
	deviceService *service.DeviceService
	proxy         *ProxyHandler
}

func NewDeviceHandler(deviceService *service.DeviceService, proxy *ProxyHandler) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService, proxy: proxy}
}

// PowerOn tracks the reporting device, then forwards the report unchanged.
// A body that cannot be parsed is still forwarded.
// POST /streaming/support/power_on
func (h *DeviceHandler) PowerOn(c *gin.Context) {
	body, err := readRequestBody(c)
	if err != nil {
		status, message := bodyReadStatus(err)
		response.VendorStatus(c, status, message, strconv.Itoa(status))
		return
	}

	log := logger.L().With(zap.String("component", "handler.device"))
	var req dto.PowerOnRequest
	if err := xml.Unmarshal(body, &req); err != nil {
		log.Warn("power_on.parse_failed", zap.Error(err))
	} else {
		ip := strings.TrimSpace(req.IPAddress)
		if ip == "" {
			ip = c.ClientIP()
		}
		_, err := h.deviceService.RecordPowerOn(c.Request.Context(), service.PowerOn{
			DeviceID:  req.Device.ID,
			Name:      strings.TrimSpace(req.Device.Name),
			IPAddress: ip,
		})
		if err != nil {
			log.Warn("power_on.record_failed", zap.String("device_id", req.Device.ID), zap.Error(err))
		}
	}

	h.proxy.forward(c, body)
}
