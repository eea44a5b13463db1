// Package response renders HTTP bodies: plain JSON for the management API and
// vendor XML for the streaming API that speakers talk to.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
)

// ErrorBody is the management API error shape.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON writes data as-is with the given status.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Success writes a 200 JSON body.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Error writes a management error body.
func Error(c *gin.Context, status int, title, message string) {
	c.JSON(status, ErrorBody{Error: title, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, DefaultTitle(http.StatusBadRequest), message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, DefaultTitle(http.StatusUnauthorized), message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, DefaultTitle(http.StatusNotFound), message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, DefaultTitle(http.StatusInternalServerError), message)
}

// ErrorFrom renders err as a management error body. It returns false when err is nil.
func ErrorFrom(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	appErr := infraerrors.FromError(err)
	title := appErr.Title
	if title == "" {
		title = DefaultTitle(appErr.Code)
	}
	message := appErr.Message
	if message == "" {
		message = infraerrors.UnknownMessage
	}
	Error(c, appErr.Code, title, message)
	return true
}

// DefaultTitle is the "error" field used when an error carries no title of its own.
func DefaultTitle(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusBadGateway:
		return "Bad gateway"
	case http.StatusInternalServerError:
		return "Internal server error"
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Internal server error"
}
