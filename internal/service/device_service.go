package service

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Device is a speaker that has contacted this service.
type Device struct {
	DeviceID  string
	Name      string
	AccountID string
	IPAddress string
	FirstSeen time.Time
	LastSeen  time.Time
	UpdatedOn time.Time
	Version   int64
}

// DeviceRepository persists devices keyed by device id.
type DeviceRepository interface {
	// GetByID returns nil, nil when the device is unknown.
	GetByID(ctx context.Context, deviceID string) (*Device, error)
	// Upsert inserts or refreshes a device. An update keeps FirstSeen and bumps Version.
	Upsert(ctx context.Context, device *Device) error
}

// PowerOn is what a speaker reports when it boots.
type PowerOn struct {
	DeviceID  string
	AccountID string
	Name      string
	IPAddress string
}

// DeviceService records speakers as they contact the service.
type DeviceService struct {
	repo    DeviceRepository
	tracker *DeviceTracker
	now     func() time.Time
}

func NewDeviceService(repo DeviceRepository, tracker *DeviceTracker) *DeviceService {
	return &DeviceService{repo: repo, tracker: tracker, now: time.Now}
}

// RecordPowerOn marks the device as seen in memory and in the device table.
func (s *DeviceService) RecordPowerOn(ctx context.Context, in PowerOn) (*Device, error) {
	in.DeviceID = strings.TrimSpace(in.DeviceID)
	if in.DeviceID == "" {
		return nil, fmt.Errorf("device id is required")
	}
	now := s.now().UTC()
	seen := s.tracker.RecordSeen(in.DeviceID, in.IPAddress, now)

	device := &Device{
		DeviceID:  in.DeviceID,
		Name:      in.Name,
		AccountID: in.AccountID,
		IPAddress: in.IPAddress,
		FirstSeen: seen.FirstSeen,
		LastSeen:  seen.LastSeen,
		UpdatedOn: now,
	}
	if err := s.repo.Upsert(ctx, device); err != nil {
		return nil, fmt.Errorf("upsert device %s: %w", in.DeviceID, err)
	}
	return device, nil
}

// Speakers returns every device that has powered on since startup.
func (s *DeviceService) Speakers() []TrackedDevice {
	return s.tracker.ListAll()
}
