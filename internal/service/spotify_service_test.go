//go:build unit

package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ueberboese/ueberboese-api/internal/config"
	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
)

type spotifyAuthClientStub struct {
	result       *SpotifyAuthResult
	err          error
	lastCode     string
	lastRedirect string
}

func (s *spotifyAuthClientStub) AuthCodeURL(state, redirectURI string) string {
	q := url.Values{"state": {state}, "redirect_uri": {redirectURI}}
	return "https://accounts.example.com/authorize?" + q.Encode()
}

func (s *spotifyAuthClientStub) Exchange(ctx context.Context, code, redirectURI string) (*SpotifyAuthResult, error) {
	s.lastCode = code
	s.lastRedirect = redirectURI
	return s.result, s.err
}

type catalogStub struct {
	entity *SpotifyEntity
	err    error
	calls  int
}

func (c *catalogStub) GetEntity(ctx context.Context, entityType, id string) (*SpotifyEntity, error) {
	c.calls++
	return c.entity, c.err
}

func spotifyConfig() *config.Config {
	return &config.Config{Spotify: config.SpotifyConfig{RedirectURI: "ueberboese-login://spotify", EntityCacheTTLSeconds: 60}}
}

func TestSpotifyAccountService_SaveAccountPreservesCreatedAt(t *testing.T) {
	repo := newSpotifyAccountRepoStub()
	svc := NewSpotifyAccountService(repo)
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }

	a, err := svc.SaveAccount(context.Background(), "u1", "User", "rt-1")
	require.NoError(t, err)
	require.Equal(t, first, a.CreatedAt)

	svc.now = func() time.Time { return first.Add(time.Hour) }
	b, err := svc.SaveAccount(context.Background(), "u1", "User Renamed", "rt-2")
	require.NoError(t, err)
	require.Equal(t, first, b.CreatedAt)
	require.Equal(t, first.Add(time.Hour), b.UpdatedAt)
	require.Equal(t, int64(1), b.Version)

	stored, err := svc.GetAccount(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "rt-2", stored.RefreshToken)
	require.Equal(t, "User Renamed", stored.DisplayName)
}

func TestSpotifyAccountService_SaveAccountValidation(t *testing.T) {
	svc := NewSpotifyAccountService(newSpotifyAccountRepoStub())
	_, err := svc.SaveAccount(context.Background(), " ", "x", "rt")
	require.Equal(t, http.StatusBadRequest, infraerrors.Code(err))
	_, err = svc.SaveAccount(context.Background(), "u1", "x", "")
	require.Equal(t, http.StatusBadRequest, infraerrors.Code(err))
}

func TestSpotifyManagementService_InitAuth(t *testing.T) {
	svc := NewSpotifyManagementService(spotifyConfig(), &spotifyAuthClientStub{}, NewSpotifyAccountService(newSpotifyAccountRepoStub()))

	redirect, err := svc.InitAuth(context.Background())
	require.NoError(t, err)
	u, err := url.Parse(redirect)
	require.NoError(t, err)
	require.Equal(t, "ueberboese-login://spotify", u.Query().Get("redirect_uri"))
	state := u.Query().Get("state")
	require.NotEmpty(t, state)

	_, ok := svc.states.Get(state)
	require.True(t, ok)
}

func TestSpotifyManagementService_ConfirmAuth(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newSpotifyAccountRepoStub()
		client := &spotifyAuthClientStub{result: &SpotifyAuthResult{UserID: "u1", DisplayName: "User", RefreshToken: "rt"}}
		svc := NewSpotifyManagementService(spotifyConfig(), client, NewSpotifyAccountService(repo))

		account, err := svc.ConfirmAuth(context.Background(), "the-code", "")
		require.NoError(t, err)
		require.Equal(t, "u1", account.SpotifyUserID)
		require.Equal(t, "the-code", client.lastCode)
		require.Equal(t, "ueberboese-login://spotify", client.lastRedirect)
		require.Contains(t, repo.accounts, "u1")
	})

	t.Run("missing_code", func(t *testing.T) {
		svc := NewSpotifyManagementService(spotifyConfig(), &spotifyAuthClientStub{}, NewSpotifyAccountService(newSpotifyAccountRepoStub()))
		_, err := svc.ConfirmAuth(context.Background(), "  ", "")
		appErr := infraerrors.FromError(err)
		require.Equal(t, http.StatusBadRequest, appErr.Code)
		require.Equal(t, "Missing parameter", appErr.Title)
		require.Contains(t, appErr.Message, "required")
	})

	t.Run("exchange_failure_is_401", func(t *testing.T) {
		svc := NewSpotifyManagementService(spotifyConfig(), &spotifyAuthClientStub{err: errors.New("invalid_grant")}, NewSpotifyAccountService(newSpotifyAccountRepoStub()))
		_, err := svc.ConfirmAuth(context.Background(), "code", "")
		appErr := infraerrors.FromError(err)
		require.Equal(t, http.StatusUnauthorized, appErr.Code)
		require.Equal(t, "Authentication failed", appErr.Title)
	})

	t.Run("save_failure_is_500", func(t *testing.T) {
		repo := newSpotifyAccountRepoStub()
		repo.upsertErr = errors.New("db down")
		client := &spotifyAuthClientStub{result: &SpotifyAuthResult{UserID: "u1", RefreshToken: "rt"}}
		svc := NewSpotifyManagementService(spotifyConfig(), client, NewSpotifyAccountService(repo))
		_, err := svc.ConfirmAuth(context.Background(), "code", "")
		appErr := infraerrors.FromError(err)
		require.Equal(t, http.StatusInternalServerError, appErr.Code)
		require.Equal(t, "Internal server error", appErr.Title)
	})

	t.Run("state_must_be_known_when_given", func(t *testing.T) {
		client := &spotifyAuthClientStub{result: &SpotifyAuthResult{UserID: "u1", RefreshToken: "rt"}}
		svc := NewSpotifyManagementService(spotifyConfig(), client, NewSpotifyAccountService(newSpotifyAccountRepoStub()))

		_, err := svc.ConfirmAuth(context.Background(), "code", "forged")
		require.True(t, infraerrors.IsReason(err, "INVALID_STATE"))

		redirect, err := svc.InitAuth(context.Background())
		require.NoError(t, err)
		u, _ := url.Parse(redirect)
		state := u.Query().Get("state")
		_, err = svc.ConfirmAuth(context.Background(), "code", state)
		require.NoError(t, err)

		// a state is single use
		_, err = svc.ConfirmAuth(context.Background(), "code", state)
		require.True(t, infraerrors.IsReason(err, "INVALID_STATE"))
	})
}

func TestParseSpotifyURI(t *testing.T) {
	for _, typ := range []string{"track", "album", "artist", "playlist", "show", "episode"} {
		gotType, id, err := ParseSpotifyURI("spotify:" + typ + ":abc123")
		require.NoError(t, err)
		require.Equal(t, typ, gotType)
		require.Equal(t, "abc123", id)
	}

	for _, bad := range []string{"", "invalid:uri:format", "spotify:track", "spotify::id", "spotify:track:", "spotify:track:a:b"} {
		_, _, err := ParseSpotifyURI(bad)
		appErr := infraerrors.FromError(err)
		require.Equal(t, "Invalid URI", appErr.Title, bad)
		require.Contains(t, appErr.Message, "Invalid Spotify URI format", bad)
	}

	_, _, err := ParseSpotifyURI("spotify:audiobook:12345")
	appErr := infraerrors.FromError(err)
	require.Equal(t, http.StatusBadRequest, appErr.Code)
	require.Equal(t, "Invalid URI", appErr.Title)
	require.Equal(t, "Unsupported entity type: audiobook. Supported types: track, album, artist, playlist, show, episode", appErr.Message)
}

func TestSpotifyEntityService_GetEntityInfo(t *testing.T) {
	img := "https://i.scdn.co/image/abc"

	t.Run("found_and_cached", func(t *testing.T) {
		client := &catalogStub{entity: &SpotifyEntity{Name: "Song", ImageURL: &img}}
		svc := NewSpotifyEntityService(spotifyConfig(), client)

		got, err := svc.GetEntityInfo(context.Background(), "spotify:track:1")
		require.NoError(t, err)
		require.Equal(t, "Song", got.Name)
		require.Equal(t, img, *got.ImageURL)

		_, err = svc.GetEntityInfo(context.Background(), "spotify:track:1")
		require.NoError(t, err)
		require.Equal(t, 1, client.calls)
	})

	t.Run("not_found", func(t *testing.T) {
		svc := NewSpotifyEntityService(spotifyConfig(), &catalogStub{})
		_, err := svc.GetEntityInfo(context.Background(), "spotify:track:nonexistent123")
		appErr := infraerrors.FromError(err)
		require.Equal(t, http.StatusNotFound, appErr.Code)
		require.Equal(t, "Not found", appErr.Title)
		require.Contains(t, appErr.Message, "not found")
	})

	t.Run("api_error", func(t *testing.T) {
		svc := NewSpotifyEntityService(spotifyConfig(), &catalogStub{err: errors.New("503")})
		_, err := svc.GetEntityInfo(context.Background(), "spotify:album:1")
		require.Equal(t, http.StatusInternalServerError, infraerrors.Code(err))
	})

	t.Run("invalid_uri_skips_client", func(t *testing.T) {
		client := &catalogStub{}
		svc := NewSpotifyEntityService(spotifyConfig(), client)
		_, err := svc.GetEntityInfo(context.Background(), "bogus")
		require.Equal(t, http.StatusBadRequest, infraerrors.Code(err))
		require.Zero(t, client.calls)
	})
}
