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

// GroupHandler manages stereo pairs of two speakers.
type GroupHandler struct {
	groupService *service.DeviceGroupService
}

func NewGroupHandler(groupService *service.DeviceGroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// Create pairs the LEFT and RIGHT devices of the request.
// POST /streaming/account/:accountId/group/
func (h *GroupHandler) Create(c *gin.Context) {
	response.StreamingCORS(c)

	body, err := readRequestBody(c)
	if err != nil {
		status, message := bodyReadStatus(err)
		response.VendorStatus(c, status, message, strconv.Itoa(status))
		return
	}
	var req dto.GroupRequest
	if err := xml.Unmarshal(body, &req); err != nil {
		response.VendorStatus(c, http.StatusBadRequest, "Invalid group document", strconv.Itoa(http.StatusBadRequest))
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), req.ToInput(c.Param("accountId")))
	if err != nil {
		_ = c.Error(err)
		response.VendorErrorFrom(c, err)
		return
	}
	response.VendorXML(c, http.StatusCreated, dto.GroupFromService(group))
}

// GetByDevice returns the group deviceId belongs to, or an empty <group/>.
// GET /streaming/account/:accountId/device/:deviceId/group/
func (h *GroupHandler) GetByDevice(c *gin.Context) {
	response.StreamingCORS(c)

	group, err := h.groupService.GetGroupByDeviceID(c.Request.Context(), c.Param("accountId"), c.Param("deviceId"))
	if err != nil {
		_ = c.Error(err)
		response.VendorErrorFrom(c, err)
		return
	}
	if group == nil {
		response.VendorRaw(c, http.StatusOK, []byte(dto.EmptyGroupXML))
		return
	}
	response.VendorXML(c, http.StatusOK, dto.GroupFromService(group))
}
