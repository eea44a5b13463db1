package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/handler"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
	"github.com/ueberboese/ueberboese-api/internal/server/middleware"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

const mgmtPathPrefix = "/mgmt"

// SetupRouter registers middleware and all routes. Unmatched requests go to the proxy.
func SetupRouter(r *gin.Engine, h *handler.Handlers, cfg *config.Config, sink *service.EventLogSink) *gin.Engine {
	// the proxy forwards paths verbatim, so gin must not redirect
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.HandleMethodNotAllowed = false

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.RequestBodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(middleware.EventCapture(sink))
	r.Use(middleware.StreamingPreflight())

	r.GET("/health", handler.Health)
	r.GET("/actuator/health", handler.Health)
	r.GET("/icons/*filepath", h.Static.Icon)

	registerStreamingRoutes(r, h)
	registerEventRoutes(r, h)
	registerMgmtRoutes(r, h, cfg)

	mgmtAuth := middleware.BasicAuth(cfg.Mgmt)
	r.NoRoute(func(c *gin.Context) {
		if isMgmtPath(c.Request.URL.Path) {
			mgmtAuth(c)
			if c.IsAborted() {
				return
			}
			response.NotFound(c, "No such management endpoint")
			c.Abort()
			return
		}
		h.Proxy.Forward(c)
	})
	return r
}

func registerStreamingRoutes(r *gin.Engine, h *handler.Handlers) {
	streaming := r.Group("/streaming")
	{
		streaming.GET("/sourceproviders", h.Streaming.SourceProviders)
		streaming.POST("/support/power_on", h.Device.PowerOn)

		account := streaming.Group("/account/:accountId")
		account.GET("", h.Account.GetFullAccount)
		account.GET("/full", h.Account.GetFullAccount)
		account.POST("/group/", h.Group.Create)
		account.POST("/device/:deviceId/recent", h.Streaming.AddRecent)
		account.GET("/device/:deviceId/group/", h.Group.GetByDevice)
	}
}

func registerEventRoutes(r *gin.Engine, h *handler.Handlers) {
	r.POST("/v1/scmudc/:deviceId", h.Event.Report)
	r.POST("/bmx/:service/v1/report", h.Event.BmxReport)
}

func registerMgmtRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	mgmt := r.Group(mgmtPathPrefix, middleware.BasicAuth(cfg.Mgmt))
	{
		mgmt.GET("/accounts/:accountId/speakers", h.Admin.Mgmt.ListSpeakers)
		mgmt.GET("/devices/:deviceId/events", h.Admin.Mgmt.DeviceEvents)

		spotify := mgmt.Group("/spotify")
		{
			spotify.POST("/init", h.Admin.Spotify.InitAuth)
			spotify.POST("/confirm", h.Admin.Spotify.ConfirmAuth)
			spotify.GET("/accounts", h.Admin.Spotify.ListAccounts)
			spotify.POST("/entity", h.Admin.Spotify.GetEntity)
		}
	}
}

func isMgmtPath(path string) bool {
	return path == mgmtPathPrefix || strings.HasPrefix(path, mgmtPathPrefix+"/")
}
