package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	basicAuthRealm = `Basic realm="ueberboese-mgmt"`
	// ContextKeyMgmtUser holds the authenticated management user name.
	ContextKeyMgmtUser = "mgmt_user"
)

// BasicAuth guards the management API. A configured bcrypt hash takes precedence over the plain password.
func BasicAuth(cfg config.MgmtConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || !checkMgmtCredentials(cfg, user, pass) {
			if ok {
				logger.L().Warn("mgmt.auth_failed",
					zap.String("component", "middleware.basic_auth"),
					zap.String("user", user),
					zap.String("client_ip", c.ClientIP()),
				)
			}
			c.Header("WWW-Authenticate", basicAuthRealm)
			response.Error(c, http.StatusUnauthorized, response.DefaultTitle(http.StatusUnauthorized), "Authentication required")
			c.Abort()
			return
		}
		c.Set(ContextKeyMgmtUser, user)
		c.Next()
	}
}

// GetMgmtUserFromContext returns the user BasicAuth admitted.
func GetMgmtUserFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextKeyMgmtUser)
	if !ok {
		return "", false
	}
	user, ok := v.(string)
	return user, ok
}

func checkMgmtCredentials(cfg config.MgmtConfig, user, pass string) bool {
	if cfg.Username == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.Username)) == 1
	var passOK bool
	switch {
	case cfg.PasswordHash != "":
		passOK = bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(pass)) == nil
	case cfg.Password != "":
		passOK = subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.Password)) == 1
	}
	return userOK && passOK
}
