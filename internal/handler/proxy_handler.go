package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

// ProxyHandler relays every request no other route claims to the vendor cloud.
type ProxyHandler struct {
	forwarder service.RequestForwarder
}

func NewProxyHandler(forwarder service.RequestForwarder) *ProxyHandler {
	return &ProxyHandler{forwarder: forwarder}
}

// Forward is the catch-all route.
// ANY /**
func (h *ProxyHandler) Forward(c *gin.Context) {
	body, err := readRequestBody(c)
	if err != nil {
		status, message := bodyReadStatus(err)
		response.VendorStatus(c, status, message, strconv.Itoa(status))
		return
	}
	h.forward(c, body)
}

func (h *ProxyHandler) forward(c *gin.Context, body []byte) {
	start := time.Now()
	resp, err := h.forwarder.Forward(c.Request.Context(), c.Request, body)
	if err != nil {
		service.SetUpstreamError(c, err.Error(), time.Since(start))
		_ = c.Error(err)
		response.VendorErrorFrom(c, err)
		return
	}
	service.SetUpstreamOutcome(c, resp.StatusCode, time.Since(start))
	writeUpstreamResponse(c, resp)
}

// writeUpstreamResponse copies status, headers and body of resp verbatim.
func writeUpstreamResponse(c *gin.Context, resp *service.UpstreamResponse) {
	dst := c.Writer.Header()
	for name, values := range resp.Header {
		for _, v := range values {
			dst.Add(name, v)
		}
	}
	c.Status(resp.StatusCode)
	c.Writer.WriteHeaderNow()
	if len(resp.Body) > 0 {
		_, _ = c.Writer.Write(resp.Body)
	}
}
