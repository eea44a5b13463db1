package service

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Gin context keys describing the upstream call made for the current request.
// Set by the proxy handler, read by the access log middleware.
const (
	UpstreamStatusCodeKey   = "upstream_status_code"
	UpstreamLatencyMsKey    = "upstream_latency_ms"
	UpstreamErrorMessageKey = "upstream_error_message"
)

// SetUpstreamOutcome records the status and latency of a completed upstream call.
func SetUpstreamOutcome(c *gin.Context, statusCode int, latency time.Duration) {
	if c == nil {
		return
	}
	if statusCode > 0 {
		c.Set(UpstreamStatusCodeKey, statusCode)
	}
	if latency >= 0 {
		c.Set(UpstreamLatencyMsKey, latency.Milliseconds())
	}
}

// SetUpstreamError records why the upstream call produced no response.
func SetUpstreamError(c *gin.Context, message string, latency time.Duration) {
	if c == nil {
		return
	}
	if msg := strings.TrimSpace(message); msg != "" {
		c.Set(UpstreamErrorMessageKey, msg)
	}
	if latency >= 0 {
		c.Set(UpstreamLatencyMsKey, latency.Milliseconds())
	}
}

// UpstreamOutcome reads back what SetUpstreamOutcome / SetUpstreamError stored.
// ok is false when the request never reached upstream.
func UpstreamOutcome(c *gin.Context) (statusCode int, latencyMs int64, errMessage string, ok bool) {
	if c == nil {
		return 0, 0, "", false
	}
	if v, exists := c.Get(UpstreamStatusCodeKey); exists {
		statusCode, _ = v.(int)
		ok = true
	}
	if v, exists := c.Get(UpstreamLatencyMsKey); exists {
		latencyMs, _ = v.(int64)
		ok = true
	}
	if v, exists := c.Get(UpstreamErrorMessageKey); exists {
		errMessage, _ = v.(string)
		ok = true
	}
	return statusCode, latencyMs, errMessage, ok
}
