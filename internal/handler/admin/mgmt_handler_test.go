//go:build unit

package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/ueberboese/ueberboese-api/internal/service"
	"github.com/ueberboese/ueberboese-api/internal/testutil"
)

func newMgmtTestEnv() (*gin.Engine, *service.DeviceService, *service.EventStorageService) {
	devices := service.NewDeviceService(testutil.NewMemoryDeviceRepo(), service.NewDeviceTracker())
	events := service.NewEventStorageService(testutil.NewTestConfig())
	h := NewMgmtHandler(devices, events)

	r := gin.New()
	r.GET("/mgmt/accounts/:accountId/speakers", h.ListSpeakers)
	r.GET("/mgmt/devices/:deviceId/events", h.DeviceEvents)
	return r, devices, events
}

func TestMgmtHandler_ListSpeakers(t *testing.T) {
	r, devices, _ := newMgmtTestEnv()

	w := testutil.Serve(r, testutil.NewRequest(http.MethodGet, "/mgmt/accounts/6921042/speakers", ""))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"speakers":[]}`, w.Body.String())

	ctx := context.Background()
	_, err := devices.RecordPowerOn(ctx, service.PowerOn{DeviceID: "B", IPAddress: "192.168.1.2"})
	require.NoError(t, err)
	_, err = devices.RecordPowerOn(ctx, service.PowerOn{DeviceID: "A", IPAddress: "192.168.1.1"})
	require.NoError(t, err)
	_, err = devices.RecordPowerOn(ctx, service.PowerOn{DeviceID: "B", IPAddress: "192.168.1.3"})
	require.NoError(t, err)

	w = testutil.Serve(r, testutil.NewRequest(http.MethodGet, "/mgmt/accounts/6921042/speakers", ""))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	require.JSONEq(t, `{"speakers":[{"ipAddress":"192.168.1.1"},{"ipAddress":"192.168.1.3"}]}`, w.Body.String())
}

func TestMgmtHandler_DeviceEvents(t *testing.T) {
	r, _, events := newMgmtTestEnv()

	_, err := events.StoreEvent("587A628A4042", []byte(`{"envelope":{"uniqueId":"587A628A4042"},"payload":{"n":1}}`))
	require.NoError(t, err)
	_, err = events.StoreEvent("587A628A4042", []byte(`{"payload":{"n":2}}`))
	require.NoError(t, err)

	w := testutil.Serve(r, testutil.NewRequest(http.MethodGet, "/mgmt/devices/587A628A4042/events", ""))
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		DeviceID string `json:"deviceId"`
		Events   []struct {
			ID         string          `json:"id"`
			Envelope   json.RawMessage `json:"envelope"`
			Payload    json.RawMessage `json:"payload"`
			ReceivedAt time.Time       `json:"receivedAt"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "587A628A4042", got.DeviceID)
	require.Len(t, got.Events, 2)
	require.JSONEq(t, `{"uniqueId":"587A628A4042"}`, string(got.Events[0].Envelope))
	require.JSONEq(t, `{"n":1}`, string(got.Events[0].Payload))
	require.Equal(t, "null", string(got.Events[1].Envelope))
	require.JSONEq(t, `{"n":2}`, string(got.Events[1].Payload))
	require.NotEmpty(t, got.Events[0].ID)
	require.False(t, got.Events[0].ReceivedAt.IsZero())
}

func TestMgmtHandler_DeviceEventsUnknownDevice(t *testing.T) {
	r, _, _ := newMgmtTestEnv()

	w := testutil.Serve(r, testutil.NewRequest(http.MethodGet, "/mgmt/devices/NOPE/events", ""))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"deviceId":"NOPE","events":[]}`, w.Body.String())
}
