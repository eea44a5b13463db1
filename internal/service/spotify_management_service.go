package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/ueberboese/ueberboese-api/internal/config"
	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"go.uber.org/zap"
)

const spotifyAuthStateTTL = 10 * time.Minute

// SpotifyAuthResult is what a completed authorization code exchange yields.
type SpotifyAuthResult struct {
	UserID       string
	DisplayName  string
	RefreshToken string
}

// SpotifyAuthClient talks to the Spotify accounts service.
type SpotifyAuthClient interface {
	AuthCodeURL(state, redirectURI string) string
	// Exchange trades an authorization code for tokens and resolves the user profile.
	Exchange(ctx context.Context, code, redirectURI string) (*SpotifyAuthResult, error)
}

type SpotifyManagementService struct {
	client      SpotifyAuthClient
	accounts    *SpotifyAccountService
	redirectURI string
	states      *cache.Cache
}

func NewSpotifyManagementService(cfg *config.Config, client SpotifyAuthClient, accounts *SpotifyAccountService) *SpotifyManagementService {
	return &SpotifyManagementService{
		client:      client,
		accounts:    accounts,
		redirectURI: cfg.Spotify.RedirectURI,
		states:      cache.New(spotifyAuthStateTTL, time.Minute),
	}
}

// InitAuth returns the Spotify authorize URL the operator should open.
func (s *SpotifyManagementService) InitAuth(ctx context.Context) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", infraerrors.InternalServer("SPOTIFY_STATE_FAILED", "Failed to generate authorization URL").WithCause(err)
	}
	state := id.String()
	s.states.SetDefault(state, time.Now())
	return s.client.AuthCodeURL(state, s.redirectURI), nil
}

// ConfirmAuth exchanges code and stores the resulting account. state is optional;
// when given it must come from a previous InitAuth.
func (s *SpotifyManagementService) ConfirmAuth(ctx context.Context, code, state string) (*SpotifyAccount, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, infraerrors.BadRequest("MISSING_PARAMETER", "Authorization code is required").WithTitle("Missing parameter")
	}
	if state = strings.TrimSpace(state); state != "" {
		if _, ok := s.states.Get(state); !ok {
			return nil, infraerrors.BadRequest("INVALID_STATE", "Authorization state is unknown or expired").WithTitle("Invalid state")
		}
		s.states.Delete(state)
	}

	log := logger.L().With(zap.String("component", "service.spotify_management"))

	result, err := s.client.Exchange(ctx, code, s.redirectURI)
	if err != nil {
		log.Warn("spotify.exchange_failed", zap.Error(err))
		return nil, infraerrors.Unauthorized("SPOTIFY_AUTH_FAILED", "Failed to authenticate with Spotify").
			WithTitle("Authentication failed").
			WithCause(err)
	}

	account, err := s.accounts.SaveAccount(ctx, result.UserID, result.DisplayName, result.RefreshToken)
	if err != nil {
		log.Error("spotify.account_save_failed", zap.String("spotify_user_id", result.UserID), zap.Error(err))
		return nil, infraerrors.InternalServer("SPOTIFY_ACCOUNT_SAVE_FAILED", "Failed to save Spotify account").
			WithTitle("Internal server error").
			WithCause(err)
	}
	log.Info("spotify.account_connected", zap.String("spotify_user_id", account.SpotifyUserID))
	return account, nil
}

func (s *SpotifyManagementService) ListAccounts(ctx context.Context) ([]SpotifyAccount, error) {
	accounts, err := s.accounts.ListAllAccounts(ctx)
	if err != nil {
		return nil, infraerrors.InternalServer("SPOTIFY_ACCOUNTS_LIST_FAILED", "Failed to list Spotify accounts").WithCause(err)
	}
	return accounts, nil
}
