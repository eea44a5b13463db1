//go:build unit

package service

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// forwarderStub answers every Forward with resp/err after delay.
type forwarderStub struct {
	resp  *UpstreamResponse
	err   error
	delay time.Duration
	calls atomic.Int32

	mu       sync.Mutex
	requests []forwardedRequest
}

type forwardedRequest struct {
	method string
	uri    string
	header map[string][]string
}

func (f *forwarderStub) Forward(ctx context.Context, in *http.Request, body []byte) (*UpstreamResponse, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.requests = append(f.requests, forwardedRequest{method: in.Method, uri: in.URL.RequestURI(), header: in.Header.Clone()})
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *forwarderStub) lastRequest() forwardedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return forwardedRequest{}
	}
	return f.requests[len(f.requests)-1]
}

type directoryStub struct {
	accounts []SpotifyAccount
	err      error
}

func (d *directoryStub) ListAllAccounts(ctx context.Context) ([]SpotifyAccount, error) {
	if d.err != nil {
		return nil, d.err
	}
	return append([]SpotifyAccount(nil), d.accounts...), nil
}

type documentStoreStub struct {
	mu       sync.Mutex
	docs     map[string][]byte
	loadErr  error
	saveErr  error
	saveHits int
}

func newDocumentStoreStub() *documentStoreStub {
	return &documentStoreStub{docs: map[string][]byte{}}
}

func (s *documentStoreStub) Load(ctx context.Context, accountID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	raw, ok := s.docs[accountID]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), raw...), nil
}

func (s *documentStoreStub) Save(ctx context.Context, accountID string, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveHits++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.docs[accountID] = append([]byte(nil), raw...)
	return nil
}

type groupRepoStub struct {
	mu      sync.Mutex
	groups  []DeviceGroup
	nextID  int64
	findErr error
}

func (r *groupRepoStub) FindByMember(ctx context.Context, accountID, deviceID string) (*DeviceGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for i := range r.groups {
		g := r.groups[i]
		if g.AccountID == accountID && (g.LeftDeviceID == deviceID || g.RightDeviceID == deviceID) {
			return &g, nil
		}
	}
	return nil, nil
}

func (r *groupRepoStub) Create(ctx context.Context, group *DeviceGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	group.ID = r.nextID
	r.groups = append(r.groups, *group)
	return nil
}

func (r *groupRepoStub) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.groups)
}

// deviceRepoStub mirrors the SQL upsert: FirstSeen and non-empty name/account survive, Version bumps.
type deviceRepoStub struct {
	mu      sync.Mutex
	devices map[string]Device
	getErr  error
}

func newDeviceRepoStub(ids ...string) *deviceRepoStub {
	r := &deviceRepoStub{devices: map[string]Device{}}
	for _, id := range ids {
		r.devices[id] = Device{DeviceID: id}
	}
	return r
}

func (r *deviceRepoStub) GetByID(ctx context.Context, deviceID string) (*Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	d, ok := r.devices[deviceID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *deviceRepoStub) Upsert(ctx context.Context, device *Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.devices[device.DeviceID]; ok {
		device.FirstSeen = existing.FirstSeen
		device.Version = existing.Version + 1
		if device.Name == "" {
			device.Name = existing.Name
		}
		if device.AccountID == "" {
			device.AccountID = existing.AccountID
		}
	}
	r.devices[device.DeviceID] = *device
	return nil
}

// spotifyAccountRepoStub mirrors the SQL upsert: CreatedAt survives, Version bumps.
type spotifyAccountRepoStub struct {
	mu        sync.Mutex
	accounts  map[string]SpotifyAccount
	upsertErr error
}

func newSpotifyAccountRepoStub() *spotifyAccountRepoStub {
	return &spotifyAccountRepoStub{accounts: map[string]SpotifyAccount{}}
}

func (r *spotifyAccountRepoStub) Upsert(ctx context.Context, account *SpotifyAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	if existing, ok := r.accounts[account.SpotifyUserID]; ok {
		account.CreatedAt = existing.CreatedAt
		account.Version = existing.Version + 1
	}
	r.accounts[account.SpotifyUserID] = *account
	return nil
}

func (r *spotifyAccountRepoStub) Insert(ctx context.Context, account *SpotifyAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.SpotifyUserID] = *account
	return nil
}

func (r *spotifyAccountRepoStub) GetByUserID(ctx context.Context, spotifyUserID string) (*SpotifyAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[spotifyUserID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *spotifyAccountRepoStub) List(ctx context.Context) ([]SpotifyAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SpotifyAccount, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
