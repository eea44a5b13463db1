package handler

import (
	"encoding/xml"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ueberboese/ueberboese-api/internal/handler/dto"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

// StreamingHandler answers the small streaming endpoints the emulator owns outright.
type StreamingHandler struct {
	recentService *service.RecentService
}

func NewStreamingHandler(recentService *service.RecentService) *StreamingHandler {
	return &StreamingHandler{recentService: recentService}
}

// SourceProviders lists the fixed music service catalogue.
// GET /streaming/sourceproviders
func (h *StreamingHandler) SourceProviders(c *gin.Context) {
	response.StreamingCORS(c)
	response.VendorXML(c, http.StatusOK, dto.SourceProvidersFromService(service.SourceProviders()))
}

// AddRecent records what a speaker just played.
// POST /streaming/account/:accountId/device/:deviceId/recent
func (h *StreamingHandler) AddRecent(c *gin.Context) {
	response.StreamingCORSExposing(c, "Credentials")

	body, err := readRequestBody(c)
	if err != nil {
		status, message := bodyReadStatus(err)
		response.VendorStatus(c, status, message, strconv.Itoa(status))
		return
	}
	var req dto.RecentRequest
	if err := xml.Unmarshal(body, &req); err != nil {
		response.VendorStatus(c, http.StatusBadRequest, "Invalid recent item", strconv.Itoa(http.StatusBadRequest))
		return
	}

	result := h.recentService.AddRecent(c.Request.Context(), req.ToInput(c.Param("accountId"), c.Param("deviceId")))
	c.Header("Location", result.Location)
	response.VendorXML(c, http.StatusCreated, dto.RecentFromService(result))
}
