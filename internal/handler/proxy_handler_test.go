//go:build unit

package handler

import (
	"encoding/xml"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
	"github.com/ueberboese/ueberboese-api/internal/server/middleware"
	"github.com/ueberboese/ueberboese-api/internal/service"
	"github.com/ueberboese/ueberboese-api/internal/testutil"
)

func newProxyEngine(fwd service.RequestForwarder, maxBody int64) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestBodyLimit(maxBody))
	r.NoRoute(NewProxyHandler(fwd).Forward)
	return r
}

func TestProxyHandler_RelaysUpstreamVerbatim(t *testing.T) {
	fwd := &testutil.StubForwarder{Response: &service.UpstreamResponse{
		StatusCode: http.StatusAccepted,
		Header: http.Header{
			"Content-Type": {"application/vnd.bose.streaming-v1.2+xml"},
			"X-Upstream":   {"a", "b"},
		},
		Body: []byte("<ok/>"),
	}}
	r := newProxyEngine(fwd, 1<<20)

	req := testutil.NewRequest(http.MethodPut, "/streaming/account/1/device/2/presets?x=1", "<preset/>")
	w := testutil.Serve(r, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Equal(t, "<ok/>", w.Body.String())
	require.Equal(t, []string{"a", "b"}, w.Header().Values("X-Upstream"))
	require.Equal(t, "application/vnd.bose.streaming-v1.2+xml", w.Header().Get("Content-Type"))

	require.Equal(t, 1, fwd.CallCount())
	call := fwd.Calls[0]
	require.Equal(t, http.MethodPut, call.Method)
	require.Equal(t, "/streaming/account/1/device/2/presets?x=1", call.RequestURI)
	require.Equal(t, "<preset/>", string(call.Body))
}

func TestProxyHandler_EmptyUpstreamBody(t *testing.T) {
	fwd := &testutil.StubForwarder{Response: &service.UpstreamResponse{StatusCode: http.StatusNoContent}}
	w := testutil.Serve(newProxyEngine(fwd, 1<<20), testutil.NewRequest(http.MethodDelete, "/anything", ""))

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Body.Bytes())
}

func TestProxyHandler_UpstreamFailureIsVendorStatus(t *testing.T) {
	fwd := &testutil.StubForwarder{Err: service.ErrUpstreamUnavailable}
	w := testutil.Serve(newProxyEngine(fwd, 1<<20), testutil.NewRequest(http.MethodGet, "/streaming/unknown", ""))

	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Equal(t, response.VendorContentType, w.Header().Get("Content-Type"))

	var status response.VendorStatusBody
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &status))
	require.Equal(t, "502", status.StatusCode)
	require.Equal(t, "upstream unavailable", status.Message)
}

func TestProxyHandler_BodyTooLarge(t *testing.T) {
	fwd := &testutil.StubForwarder{Response: &service.UpstreamResponse{StatusCode: http.StatusOK}}
	req := testutil.NewRequest(http.MethodPost, "/big", strings.Repeat("x", 64))
	w := testutil.Serve(newProxyEngine(fwd, 16), req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Contains(t, w.Body.String(), "exceeds limit of 16 bytes")
	require.Zero(t, fwd.CallCount())
}
