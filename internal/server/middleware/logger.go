package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"github.com/ueberboese/ueberboese-api/internal/service"
	"go.uber.org/zap"
)

// RequestLogger logs every request with its full URI once it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		uri := c.Request.URL.RequestURI()

		c.Next()

		fields := []zap.Field{
			zap.String("component", "http.access"),
			zap.String("method", c.Request.Method),
			zap.String("uri", uri),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if status, latencyMs, errMsg, ok := service.UpstreamOutcome(c); ok {
			if status > 0 {
				fields = append(fields, zap.Int("upstream_status", status))
			}
			fields = append(fields, zap.Int64("upstream_latency_ms", latencyMs))
			if errMsg != "" {
				fields = append(fields, zap.String("upstream_error", errMsg))
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		log := logger.L()
		switch {
		case c.Writer.Status() >= 500:
			log.Error("http.request", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("http.request", fields...)
		default:
			log.Info("http.request", fields...)
		}
	}
}
