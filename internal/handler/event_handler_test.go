//go:build unit

package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/ueberboese/ueberboese-api/internal/pkg/response"
	"github.com/ueberboese/ueberboese-api/internal/service"
	"github.com/ueberboese/ueberboese-api/internal/testutil"
)

const deviceEventJSON = `{"envelope":{"monoTime":1234,"payloadProtocolVersion":"3.1","payloadType":"scmudc",` +
	`"protocolVersion":"1.0","time":"2025-01-01T10:00:00.000+00:00","uniqueId":"587A628A4042"},` +
	`"payload":{"deviceInfo":{"deviceID":"587A628A4042"},"events":[{"type":"play-state-changed"}]}}`

func newEventTestEnv() (*gin.Engine, *service.EventStorageService) {
	events := service.NewEventStorageService(testutil.NewTestConfig())
	h := NewEventHandler(events)

	r := gin.New()
	r.POST("/v1/scmudc/:deviceId", h.Report)
	r.POST("/bmx/:service/v1/report", h.BmxReport)
	return r, events
}

func TestEventHandler_ReportStoresEvent(t *testing.T) {
	r, events := newEventTestEnv()

	w := testutil.Serve(r, testutil.NewRequest(http.MethodPost, "/v1/scmudc/587A628A4042", deviceEventJSON))
	require.Equal(t, http.StatusOK, w.Code)

	stored := events.EventsForDevice("587A628A4042")
	require.Len(t, stored, 1)
	require.JSONEq(t, `{"deviceInfo":{"deviceID":"587A628A4042"},"events":[{"type":"play-state-changed"}]}`, string(stored[0].Payload))
	require.Contains(t, string(stored[0].Envelope), `"payloadType":"scmudc"`)
}

func TestEventHandler_ReportRejectsInvalidJSON(t *testing.T) {
	r, events := newEventTestEnv()

	for _, body := range []string{"{broken", `["array"]`} {
		w := testutil.Serve(r, testutil.NewRequest(http.MethodPost, "/v1/scmudc/ABC", body))
		require.Equal(t, http.StatusBadRequest, w.Code, body)

		var got response.ErrorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Equal(t, "Bad request", got.Error)
	}
	require.Empty(t, events.EventsForDevice("ABC"))
}

func TestEventHandler_BmxReportAccepted(t *testing.T) {
	r, _ := newEventTestEnv()

	w := testutil.Serve(r, testutil.NewRequest(http.MethodPost, "/bmx/tunein/v1/report", `{"timeStamp":"now"}`))
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Body.String())
}
