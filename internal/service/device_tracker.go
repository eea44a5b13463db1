package service

import (
	"sort"
	"sync"
	"time"

	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"go.uber.org/zap"
)

// TrackedDevice is the in-memory view of a speaker seen since startup.
type TrackedDevice struct {
	DeviceID  string
	IPAddress string
	FirstSeen time.Time
	LastSeen  time.Time
}

// DeviceTracker keeps the last known address of each device. Updates to one key are atomic.
type DeviceTracker struct {
	mu      sync.Mutex
	devices map[string]TrackedDevice
}

func NewDeviceTracker() *DeviceTracker {
	return &DeviceTracker{devices: make(map[string]TrackedDevice)}
}

// RecordSeen inserts the device or refreshes its address and LastSeen, keeping FirstSeen.
func (t *DeviceTracker) RecordSeen(deviceID, ipAddress string, at time.Time) TrackedDevice {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.devices[deviceID]
	if !ok {
		d := TrackedDevice{DeviceID: deviceID, IPAddress: ipAddress, FirstSeen: at, LastSeen: at}
		t.devices[deviceID] = d
		logger.L().With(
			zap.String("component", "service.device_tracker"),
			zap.String("device_id", deviceID),
			zap.String("ip_address", ipAddress),
		).Info("device.first_seen")
		return d
	}
	existing.IPAddress = ipAddress
	existing.LastSeen = at
	t.devices[deviceID] = existing
	return existing
}

// ListAll returns a snapshot ordered by device id.
func (t *DeviceTracker) ListAll() []TrackedDevice {
	t.mu.Lock()
	out := make([]TrackedDevice, 0, len(t.devices))
	for _, d := range t.devices {
		out = append(out, d)
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })
	return out
}
