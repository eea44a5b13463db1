package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
)

// SpotifyAccount is a connected Spotify user and its long-lived refresh token.
type SpotifyAccount struct {
	SpotifyUserID string
	DisplayName   string
	RefreshToken  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}

// SpotifyAccountRepository stores Spotify accounts keyed by spotify_user_id.
type SpotifyAccountRepository interface {
	// Upsert inserts or updates by SpotifyUserID. An update keeps CreatedAt and bumps Version.
	Upsert(ctx context.Context, account *SpotifyAccount) error
	// Insert stores account with its timestamps as given.
	Insert(ctx context.Context, account *SpotifyAccount) error
	// GetByUserID returns nil, nil when the account does not exist.
	GetByUserID(ctx context.Context, spotifyUserID string) (*SpotifyAccount, error)
	// List returns every account ordered by CreatedAt, newest first.
	List(ctx context.Context) ([]SpotifyAccount, error)
}

type SpotifyAccountService struct {
	repo SpotifyAccountRepository
	now  func() time.Time
}

func NewSpotifyAccountService(repo SpotifyAccountRepository) *SpotifyAccountService {
	return &SpotifyAccountService{repo: repo, now: time.Now}
}

var _ OAuthAccountDirectory = (*SpotifyAccountService)(nil)

// SaveAccount creates or refreshes the account for spotifyUserID.
func (s *SpotifyAccountService) SaveAccount(ctx context.Context, spotifyUserID, displayName, refreshToken string) (*SpotifyAccount, error) {
	spotifyUserID = strings.TrimSpace(spotifyUserID)
	if spotifyUserID == "" {
		return nil, infraerrors.BadRequest("SPOTIFY_USER_ID_REQUIRED", "spotify user id is required")
	}
	if refreshToken == "" {
		return nil, infraerrors.BadRequest("SPOTIFY_REFRESH_TOKEN_REQUIRED", "refresh token is required")
	}

	now := s.now().UTC()
	account := &SpotifyAccount{
		SpotifyUserID: spotifyUserID,
		DisplayName:   displayName,
		RefreshToken:  refreshToken,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Upsert(ctx, account); err != nil {
		return nil, fmt.Errorf("save spotify account %s: %w", spotifyUserID, err)
	}
	return account, nil
}

func (s *SpotifyAccountService) GetAccount(ctx context.Context, spotifyUserID string) (*SpotifyAccount, error) {
	return s.repo.GetByUserID(ctx, spotifyUserID)
}

// ListAllAccounts returns every connected account, newest first.
func (s *SpotifyAccountService) ListAllAccounts(ctx context.Context) ([]SpotifyAccount, error) {
	return s.repo.List(ctx)
}
