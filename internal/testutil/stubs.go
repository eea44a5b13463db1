//go:build unit

// Package testutil holds stubs, fixtures and helpers shared by unit tests.
// Every file carries the unit build tag.
package testutil

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"sync"

	"github.com/ueberboese/ueberboese-api/internal/service"
)

// ============================================================
// MemoryDeviceRepo is an in-memory service.DeviceRepository.
// ============================================================

var _ service.DeviceRepository = (*MemoryDeviceRepo)(nil)

type MemoryDeviceRepo struct {
	mu      sync.Mutex
	Devices map[string]*service.Device
	Err     error
}

func NewMemoryDeviceRepo(devices ...*service.Device) *MemoryDeviceRepo {
	r := &MemoryDeviceRepo{Devices: make(map[string]*service.Device)}
	for _, d := range devices {
		r.Devices[d.DeviceID] = d
	}
	return r
}

func (r *MemoryDeviceRepo) GetByID(_ context.Context, deviceID string) (*service.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	d, ok := r.Devices[deviceID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *MemoryDeviceRepo) Upsert(_ context.Context, device *service.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	cp := *device
	if old, ok := r.Devices[device.DeviceID]; ok {
		cp.FirstSeen = old.FirstSeen
		cp.Version = old.Version + 1
	}
	r.Devices[device.DeviceID] = &cp
	return nil
}

// ============================================================
// MemoryGroupRepo is an in-memory service.DeviceGroupRepository.
// ============================================================

var _ service.DeviceGroupRepository = (*MemoryGroupRepo)(nil)

type MemoryGroupRepo struct {
	mu     sync.Mutex
	Groups []*service.DeviceGroup
	nextID int64
}

func (r *MemoryGroupRepo) FindByMember(_ context.Context, accountID, deviceID string) (*service.DeviceGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.Groups {
		if g.AccountID == accountID && (g.LeftDeviceID == deviceID || g.RightDeviceID == deviceID) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryGroupRepo) Create(_ context.Context, group *service.DeviceGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	group.ID = r.nextID
	cp := *group
	r.Groups = append(r.Groups, &cp)
	return nil
}

// ============================================================
// MemoryRecentRepo / MemorySpotifyAccountRepo
// ============================================================

var _ service.RecentRepository = (*MemoryRecentRepo)(nil)

type MemoryRecentRepo struct {
	mu      sync.Mutex
	Recents []service.Recent
}

func (r *MemoryRecentRepo) Create(_ context.Context, recent *service.Recent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Recents = append(r.Recents, *recent)
	return nil
}

var _ service.SpotifyAccountRepository = (*MemorySpotifyAccountRepo)(nil)

type MemorySpotifyAccountRepo struct {
	mu       sync.Mutex
	Accounts map[string]service.SpotifyAccount
}

func NewMemorySpotifyAccountRepo(accounts ...service.SpotifyAccount) *MemorySpotifyAccountRepo {
	r := &MemorySpotifyAccountRepo{Accounts: make(map[string]service.SpotifyAccount)}
	for _, a := range accounts {
		r.Accounts[a.SpotifyUserID] = a
	}
	return r
}

func (r *MemorySpotifyAccountRepo) Upsert(_ context.Context, account *service.SpotifyAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.Accounts[account.SpotifyUserID]; ok {
		account.CreatedAt = old.CreatedAt
		account.Version = old.Version + 1
	}
	r.Accounts[account.SpotifyUserID] = *account
	return nil
}

func (r *MemorySpotifyAccountRepo) Insert(_ context.Context, account *service.SpotifyAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Accounts[account.SpotifyUserID] = *account
	return nil
}

func (r *MemorySpotifyAccountRepo) GetByUserID(_ context.Context, spotifyUserID string) (*service.SpotifyAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Accounts[spotifyUserID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *MemorySpotifyAccountRepo) List(_ context.Context) ([]service.SpotifyAccount, error) {
	r.mu.Lock()
	out := make([]service.SpotifyAccount, 0, len(r.Accounts))
	for _, a := range r.Accounts {
		out = append(out, a)
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ============================================================
// MemoryDocumentStore is an in-memory service.AccountDocumentStore.
// ============================================================

var _ service.AccountDocumentStore = (*MemoryDocumentStore)(nil)

type MemoryDocumentStore struct {
	mu      sync.Mutex
	Docs    map[string][]byte
	LoadErr error
	SaveErr error
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{Docs: make(map[string][]byte)}
}

func (s *MemoryDocumentStore) Load(_ context.Context, accountID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	raw, ok := s.Docs[accountID]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), raw...), nil
}

func (s *MemoryDocumentStore) Save(_ context.Context, accountID string, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Docs[accountID] = append([]byte(nil), raw...)
	return nil
}

// ============================================================
// StubForwarder is a service.RequestForwarder that records every call.
// ============================================================

var _ service.RequestForwarder = (*StubForwarder)(nil)

// ForwardedRequest is one call seen by StubForwarder.
type ForwardedRequest struct {
	Method     string
	RequestURI string
	Header     http.Header
	Body       []byte
}

type StubForwarder struct {
	mu       sync.Mutex
	Response *service.UpstreamResponse
	Err      error
	Calls    []ForwardedRequest
}

func (f *StubForwarder) Forward(_ context.Context, in *http.Request, body []byte) (*service.UpstreamResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, ForwardedRequest{
		Method:     in.Method,
		RequestURI: in.URL.RequestURI(),
		Header:     in.Header.Clone(),
		Body:       append([]byte(nil), body...),
	})
	if f.Err != nil {
		return nil, f.Err
	}
	resp := *f.Response
	resp.Header = f.Response.Header.Clone()
	resp.Body = append([]byte(nil), f.Response.Body...)
	return &resp, nil
}

func (f *StubForwarder) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// ============================================================
// Spotify client stubs
// ============================================================

var (
	_ service.SpotifyAuthClient    = (*StubSpotifyAuthClient)(nil)
	_ service.SpotifyCatalogClient = (*StubSpotifyCatalogClient)(nil)
)

type StubSpotifyAuthClient struct {
	Result *service.SpotifyAuthResult
	Err    error
}

func (s *StubSpotifyAuthClient) AuthCodeURL(state, redirectURI string) string {
	q := url.Values{"state": {state}, "redirect_uri": {redirectURI}}
	return "https://accounts.spotify.test/authorize?" + q.Encode()
}

func (s *StubSpotifyAuthClient) Exchange(_ context.Context, _, _ string) (*service.SpotifyAuthResult, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Result, nil
}

type StubSpotifyCatalogClient struct {
	Entities map[string]*service.SpotifyEntity
	Err      error
}

func (s *StubSpotifyCatalogClient) GetEntity(_ context.Context, entityType, id string) (*service.SpotifyEntity, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Entities[entityType+":"+id], nil
}
