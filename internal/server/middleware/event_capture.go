package middleware

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

// maxCapturedBodyBytes bounds what one event log line carries.
const maxCapturedBodyBytes = 1 << 20

var (
	scmudcURIPattern    = regexp.MustCompile(`.*/v1/scmudc/.*`)
	bmxReportURIPattern = regexp.MustCompile(`.*/bmx/.+/v1/report.*`)
)

// EventCapture copies device event and BMX report bodies to the event log after the
// request is handled. Other requests pass through untouched.
func EventCapture(sink *service.EventLogSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri := c.Request.URL.RequestURI()
		kind := eventKind(uri)
		if kind == "" || sink == nil || c.Request.Body == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			// on read failure the handler reports the original error
			c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), errReader{err}))
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		c.Next()

		if len(body) == 0 {
			return
		}
		if len(body) > maxCapturedBodyBytes {
			body = body[:maxCapturedBodyBytes]
		}
		sink.Record(kind, eventDeviceID(kind, c.Request.URL.Path), uri, body)
	}
}

func eventKind(uri string) string {
	switch {
	case scmudcURIPattern.MatchString(uri):
		return service.EventLogKindEvent
	case bmxReportURIPattern.MatchString(uri):
		return service.EventLogKindReport
	}
	return ""
}

func eventDeviceID(kind, path string) string {
	if kind != service.EventLogKindEvent {
		return ""
	}
	_, after, ok := strings.Cut(path, "/v1/scmudc/")
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(after, "/")
	return id
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
