package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ueberboese/ueberboese-api/internal/handler/dto"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

// SpotifyHandler handles Spotify account linking and catalog lookups
type SpotifyHandler struct {
	managementService *service.SpotifyManagementService
	entityService     *service.SpotifyEntityService
}

// NewSpotifyHandler creates a new Spotify handler
func NewSpotifyHandler(managementService *service.SpotifyManagementService, entityService *service.SpotifyEntityService) *SpotifyHandler {
	return &SpotifyHandler{
		managementService: managementService,
		entityService:     entityService,
	}
}

// InitAuth generates the Spotify authorization URL
// POST /mgmt/spotify/init
func (h *SpotifyHandler) InitAuth(c *gin.Context) {
	redirectURL, err := h.managementService.InitAuth(c.Request.Context())
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	response.Success(c, dto.InitSpotifyAuthResponse{RedirectURL: redirectURL})
}

// ConfirmAuth exchanges the authorization code and stores the account
// POST /mgmt/spotify/confirm?code=...&state=...
func (h *SpotifyHandler) ConfirmAuth(c *gin.Context) {
	account, err := h.managementService.ConfirmAuth(c.Request.Context(), c.Query("code"), c.Query("state"))
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	response.Success(c, dto.ConfirmSpotifyAuthResponse{
		Success:   true,
		Message:   "Spotify account connected successfully",
		AccountID: account.SpotifyUserID,
	})
}

// ListAccounts lists connected Spotify accounts, newest first
// GET /mgmt/spotify/accounts
func (h *SpotifyHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.managementService.ListAccounts(c.Request.Context())
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	response.Success(c, dto.SpotifyAccountsFromService(accounts))
}

// GetEntity resolves name and image of a Spotify URI
// POST /mgmt/spotify/entity
func (h *SpotifyHandler) GetEntity(c *gin.Context) {
	var req dto.SpotifyEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid URI", "Invalid request: "+err.Error())
		return
	}

	entity, err := h.entityService.GetEntityInfo(c.Request.Context(), req.URI)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	response.Success(c, dto.SpotifyEntityResponse{Name: entity.Name, ImageURL: entity.ImageURL})
}
