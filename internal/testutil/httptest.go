//go:build unit

package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewGinTestContext returns a gin test context and its ResponseRecorder.
// An empty body sends no body; a body starting with "<" is sent as XML.
func NewGinTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = NewRequest(method, path, body)
	return c, rec
}

// NewRequest builds a request and sets Content-Type from the body.
func NewRequest(method, path, body string) *http.Request {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, bodyReader)
	if body != "" {
		if strings.HasPrefix(strings.TrimSpace(body), "<") {
			req.Header.Set("Content-Type", "application/vnd.bose.streaming-v1.2+xml")
		} else {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	return req
}

// Serve runs one request through engine.
func Serve(engine http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}
