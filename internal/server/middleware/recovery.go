package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
)

// Recovery converts panics into a 500 JSON error. The stack trace goes to gin.DefaultErrorWriter.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(gin.DefaultErrorWriter, func(c *gin.Context, recovered any) {
		// a body already written must not be replaced
		if c.Writer.Written() {
			c.Abort()
			return
		}
		response.Error(c, http.StatusInternalServerError, response.DefaultTitle(http.StatusInternalServerError), infraerrors.UnknownMessage)
		c.Abort()
	})
}
