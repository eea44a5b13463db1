package repository

import (
	"context"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/ueberboese/ueberboese-api/internal/config"
	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
	"github.com/ueberboese/ueberboese-api/internal/service"
	"github.com/ueberboese/ueberboese-api/internal/util/logredact"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// spotifyCatalogClient reads the Web API with an app token (client credentials flow).
type spotifyCatalogClient struct {
	tokens     oauth2.TokenSource
	apiBaseURL string
	httpOpts   reqClientOptions
}

func NewSpotifyCatalogClient(cfg *config.Config) service.SpotifyCatalogClient {
	cc := &clientcredentials.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		TokenURL:     cfg.Spotify.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	return &spotifyCatalogClient{
		tokens:     cc.TokenSource(context.Background()),
		apiBaseURL: strings.TrimRight(cfg.Spotify.APIBaseURL, "/"),
		httpOpts:   reqClientOptions{Timeout: spotifyHTTPTimeout},
	}
}

func (c *spotifyCatalogClient) GetEntity(ctx context.Context, entityType, id string) (*service.SpotifyEntity, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, infraerrors.Newf(http.StatusBadGateway, "SPOTIFY_TOKEN_FAILED", "client credentials token failed: %s", logredact.RedactText(err.Error()))
	}

	resp, err := getSharedReqClient(c.httpOpts).R().
		SetContext(ctx).
		SetBearerAuthToken(token.AccessToken).
		SetPathParam("id", id).
		Get(c.apiBaseURL + "/" + entityType + "s/{id}")
	if err != nil {
		return nil, infraerrors.Newf(http.StatusBadGateway, "SPOTIFY_REQUEST_FAILED", "request failed: %v", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case !resp.IsSuccessState():
		return nil, infraerrors.Newf(http.StatusBadGateway, "SPOTIFY_ENTITY_FAILED", "entity request failed: status %d, body: %s", resp.StatusCode, logredact.RedactText(resp.String()))
	}

	return parseSpotifyEntity(entityType, resp.Bytes()), nil
}

// parseSpotifyEntity picks the name and the first (largest) image. Tracks carry
// their cover on the album.
func parseSpotifyEntity(entityType string, body []byte) *service.SpotifyEntity {
	doc := gjson.ParseBytes(body)
	entity := &service.SpotifyEntity{Name: doc.Get("name").String()}

	imagePath := "images.0.url"
	if entityType == "track" {
		imagePath = "album.images.0.url"
	}
	if img := doc.Get(imagePath); img.Exists() && img.String() != "" {
		url := img.String()
		entity.ImageURL = &url
	}
	return entity
}
