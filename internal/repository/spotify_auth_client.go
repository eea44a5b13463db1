package repository

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/ueberboese/ueberboese-api/internal/config"
	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
	"github.com/ueberboese/ueberboese-api/internal/service"
	"github.com/ueberboese/ueberboese-api/internal/util/logredact"
	"golang.org/x/oauth2"
)

const spotifyHTTPTimeout = 30 * time.Second

// NewSpotifyAuthClient creates the Spotify accounts-service client.
func NewSpotifyAuthClient(cfg *config.Config) service.SpotifyAuthClient {
	return &spotifyAuthClient{
		oauth: oauth2.Config{
			ClientID:     cfg.Spotify.ClientID,
			ClientSecret: cfg.Spotify.ClientSecret,
			Scopes:       cfg.Spotify.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.Spotify.AuthURL,
				TokenURL:  cfg.Spotify.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		apiBaseURL: strings.TrimRight(cfg.Spotify.APIBaseURL, "/"),
		httpOpts:   reqClientOptions{Timeout: spotifyHTTPTimeout},
	}
}

type spotifyAuthClient struct {
	oauth      oauth2.Config
	apiBaseURL string
	httpOpts   reqClientOptions
}

func (c *spotifyAuthClient) withRedirect(redirectURI string) *oauth2.Config {
	cfg := c.oauth
	cfg.RedirectURL = redirectURI
	return &cfg
}

func (c *spotifyAuthClient) AuthCodeURL(state, redirectURI string) string {
	return c.withRedirect(redirectURI).AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

func (c *spotifyAuthClient) Exchange(ctx context.Context, code, redirectURI string) (*service.SpotifyAuthResult, error) {
	token, err := c.withRedirect(redirectURI).Exchange(ctx, code)
	if err != nil {
		return nil, infraerrors.Newf(http.StatusBadGateway, "SPOTIFY_TOKEN_EXCHANGE_FAILED", "token exchange failed: %s", logredact.RedactText(err.Error()))
	}
	if token.RefreshToken == "" {
		return nil, infraerrors.New(http.StatusBadGateway, "SPOTIFY_NO_REFRESH_TOKEN", "token response carries no refresh token")
	}

	resp, err := getSharedReqClient(c.httpOpts).R().
		SetContext(ctx).
		SetBearerAuthToken(token.AccessToken).
		Get(c.apiBaseURL + "/me")
	if err != nil {
		return nil, infraerrors.Newf(http.StatusBadGateway, "SPOTIFY_REQUEST_FAILED", "request failed: %v", err)
	}
	if !resp.IsSuccessState() {
		return nil, infraerrors.Newf(http.StatusBadGateway, "SPOTIFY_PROFILE_FAILED", "profile request failed: status %d, body: %s", resp.StatusCode, logredact.RedactText(resp.String()))
	}

	profile := gjson.ParseBytes(resp.Bytes())
	userID := profile.Get("id").String()
	if userID == "" {
		return nil, infraerrors.New(http.StatusBadGateway, "SPOTIFY_PROFILE_FAILED", "profile response carries no user id")
	}
	return &service.SpotifyAuthResult{
		UserID:       userID,
		DisplayName:  profile.Get("display_name").String(),
		RefreshToken: token.RefreshToken,
	}, nil
}
