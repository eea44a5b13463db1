package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
)

const streamingPathPrefix = "/streaming/"

// StreamingPreflight answers CORS preflight requests for the streaming API locally.
// Everything else continues down the chain.
func StreamingPreflight() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodOptions || !strings.HasPrefix(c.Request.URL.Path, streamingPathPrefix) {
			c.Next()
			return
		}
		response.StreamingCORS(c)
		c.AbortWithStatus(http.StatusNoContent)
	}
}
