package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

const methodNameHeader = "METHOD_NAME"

// AccountHandler serves the full-account document speakers load on boot.
type AccountHandler struct {
	fullAccountService *service.FullAccountService
}

func NewAccountHandler(fullAccountService *service.FullAccountService) *AccountHandler {
	return &AccountHandler{fullAccountService: fullAccountService}
}

// GetFullAccount returns the stored (or freshly fetched) account with Spotify credentials patched in.
// GET /streaming/account/:accountId
// GET /streaming/account/:accountId/full
func (h *AccountHandler) GetFullAccount(c *gin.Context) {
	accountID := c.Param("accountId")
	response.StreamingCORS(c)

	result, err := h.fullAccountService.GetFullAccount(c.Request.Context(), accountID, c.Request)
	if err != nil {
		_ = c.Error(err)
		// speakers only look at the status here
		response.VendorRaw(c, infraerrors.Code(err), nil)
		return
	}
	if result.FromCache {
		c.Header(methodNameHeader, "getFullAccount")
	}
	response.VendorRaw(c, http.StatusOK, result.Document.Bytes())
}
