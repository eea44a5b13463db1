package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/ueberboese/ueberboese-api/internal/config"
	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
)

const defaultMaxEventsPerDevice = 500

// StoredEvent is one device event report as received.
type StoredEvent struct {
	ID         string
	DeviceID   string
	Envelope   []byte
	Payload    []byte
	ReceivedAt time.Time
}

// JSON renders the event as {"id","envelope","payload","receivedAt"}.
func (e StoredEvent) JSON() ([]byte, error) {
	out := []byte(`{}`)
	var err error
	if out, err = sjson.SetBytes(out, "id", e.ID); err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, "envelope", rawOrNull(e.Envelope)); err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, "payload", rawOrNull(e.Payload)); err != nil {
		return nil, err
	}
	return sjson.SetBytes(out, "receivedAt", e.ReceivedAt.UTC().Format(time.RFC3339Nano))
}

func rawOrNull(b []byte) []byte {
	if len(b) == 0 {
		return []byte("null")
	}
	return b
}

// EventStorageService keeps the most recent event reports per device in memory.
type EventStorageService struct {
	mu        sync.Mutex
	byDevice  map[string][]StoredEvent
	maxEvents int
	now       func() time.Time
}

func NewEventStorageService(cfg *config.Config) *EventStorageService {
	maxEvents := cfg.Events.MaxPerDevice
	if maxEvents <= 0 {
		maxEvents = defaultMaxEventsPerDevice
	}
	return &EventStorageService{
		byDevice:  make(map[string][]StoredEvent),
		maxEvents: maxEvents,
		now:       time.Now,
	}
}

// StoreEvent validates body as a JSON object and appends it to deviceID's events,
// evicting the oldest event once the per-device limit is reached.
func (s *EventStorageService) StoreEvent(deviceID string, body []byte) (*StoredEvent, error) {
	if !gjson.ValidBytes(body) {
		return nil, infraerrors.BadRequest("INVALID_EVENT", "event body is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, infraerrors.BadRequest("INVALID_EVENT", "event body must be a JSON object")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	ev := StoredEvent{
		ID:         id.String(),
		DeviceID:   deviceID,
		ReceivedAt: s.now().UTC(),
	}
	if env := root.Get("envelope"); env.Exists() {
		ev.Envelope = []byte(env.Raw)
	}
	if payload := root.Get("payload"); payload.Exists() {
		ev.Payload = []byte(payload.Raw)
	}

	s.mu.Lock()
	events := append(s.byDevice[deviceID], ev)
	if over := len(events) - s.maxEvents; over > 0 {
		events = append([]StoredEvent(nil), events[over:]...)
	}
	s.byDevice[deviceID] = events
	s.mu.Unlock()
	return &ev, nil
}

// EventsForDevice returns a copy of deviceID's events, oldest first.
func (s *EventStorageService) EventsForDevice(deviceID string) []StoredEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StoredEvent(nil), s.byDevice[deviceID]...)
}
