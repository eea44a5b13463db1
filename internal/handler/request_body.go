package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// readRequestBody drains the request body. Bodies over the server limit yield an *http.MaxBytesError.
func readRequestBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	return io.ReadAll(c.Request.Body)
}

func extractMaxBytesError(err error) (*http.MaxBytesError, bool) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return maxErr, true
	}
	return nil, false
}

func buildBodyTooLargeMessage(limit int64) string {
	return fmt.Sprintf("Request body exceeds limit of %d bytes", limit)
}

// bodyReadStatus maps a body read failure to the status to answer with.
func bodyReadStatus(err error) (int, string) {
	if maxErr, ok := extractMaxBytesError(err); ok {
		return http.StatusRequestEntityTooLarge, buildBodyTooLargeMessage(maxErr.Limit)
	}
	return http.StatusBadRequest, "Failed to read request body"
}
