//go:build unit

package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/ueberboese/ueberboese-api/internal/testutil"
)

func newStaticTestEngine() *gin.Engine {
	r := gin.New()
	r.GET("/icons/*filepath", NewStaticHandler().Icon)
	r.GET("/health", Health)
	return r
}

func TestStaticHandler_ServesIcon(t *testing.T) {
	w := testutil.Serve(newStaticTestEngine(), testutil.NewRequest(http.MethodGet, "/icons/radio-logo-monochrome-small.png", ""))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))
	require.Equal(t, strconv.Itoa(w.Body.Len()), w.Header().Get("Content-Length"))
	require.Equal(t, "\x89PNG", w.Body.String()[:4])
}

func TestStaticHandler_NotFound(t *testing.T) {
	r := newStaticTestEngine()
	for _, path := range []string{"/icons/missing.png", "/icons/", "/icons/../static_handler.go"} {
		w := testutil.Serve(r, testutil.NewRequest(http.MethodGet, path, ""))
		require.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestIconContentType(t *testing.T) {
	tests := map[string]string{
		"a.png":  "image/png",
		"a.JPG":  "image/jpeg",
		"a.jpeg": "image/jpeg",
		"a.gif":  "image/gif",
		"a.svg":  "image/svg+xml",
		"a.ico":  "image/x-icon",
		"a.webp": "application/octet-stream",
		"noext":  "application/octet-stream",
	}
	for name, want := range tests {
		require.Equal(t, want, iconContentType(name), name)
	}
}

func TestHealth(t *testing.T) {
	w := testutil.Serve(newStaticTestEngine(), testutil.NewRequest(http.MethodGet, "/health", ""))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"UP"}`, w.Body.String())
}
