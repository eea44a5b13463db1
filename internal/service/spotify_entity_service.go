package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/ueberboese/ueberboese-api/internal/config"
	infraerrors "github.com/ueberboese/ueberboese-api/internal/pkg/errors"
)

var supportedSpotifyEntityTypes = []string{"track", "album", "artist", "playlist", "show", "episode"}

// SpotifyEntity is the display information of a Spotify catalog item.
type SpotifyEntity struct {
	Name     string
	ImageURL *string
}

// SpotifyCatalogClient reads the Spotify Web API.
type SpotifyCatalogClient interface {
	// GetEntity returns nil, nil when Spotify reports the entity does not exist.
	GetEntity(ctx context.Context, entityType, id string) (*SpotifyEntity, error)
}

type SpotifyEntityService struct {
	client SpotifyCatalogClient
	cache  *cache.Cache
}

func NewSpotifyEntityService(cfg *config.Config, client SpotifyCatalogClient) *SpotifyEntityService {
	ttl := time.Duration(cfg.Spotify.EntityCacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &SpotifyEntityService{
		client: client,
		cache:  cache.New(ttl, 10*time.Minute),
	}
}

// ParseSpotifyURI splits "spotify:<type>:<id>".
func ParseSpotifyURI(uri string) (entityType, id string, err error) {
	parts := strings.Split(strings.TrimSpace(uri), ":")
	if len(parts) != 3 || parts[0] != "spotify" || parts[1] == "" || parts[2] == "" {
		return "", "", invalidSpotifyURI("Invalid Spotify URI format. Expected spotify:<type>:<id>")
	}
	entityType, id = parts[1], parts[2]
	for _, t := range supportedSpotifyEntityTypes {
		if t == entityType {
			return entityType, id, nil
		}
	}
	return "", "", invalidSpotifyURI(fmt.Sprintf("Unsupported entity type: %s. Supported types: %s",
		entityType, strings.Join(supportedSpotifyEntityTypes, ", ")))
}

func invalidSpotifyURI(message string) error {
	return infraerrors.BadRequest("INVALID_SPOTIFY_URI", message).WithTitle("Invalid URI")
}

// GetEntityInfo resolves the name and cover image of a Spotify URI.
func (s *SpotifyEntityService) GetEntityInfo(ctx context.Context, uri string) (*SpotifyEntity, error) {
	entityType, id, err := ParseSpotifyURI(uri)
	if err != nil {
		return nil, err
	}
	key := entityType + ":" + id
	if v, ok := s.cache.Get(key); ok {
		return v.(*SpotifyEntity), nil
	}

	entity, err := s.client.GetEntity(ctx, entityType, id)
	if err != nil {
		return nil, infraerrors.InternalServer("SPOTIFY_API_FAILED", "Failed to fetch entity from Spotify").
			WithTitle("Internal server error").
			WithCause(err)
	}
	if entity == nil {
		return nil, infraerrors.NotFound("SPOTIFY_ENTITY_NOT_FOUND", "Spotify entity not found: "+uri).WithTitle("Not found")
	}
	s.cache.SetDefault(key, entity)
	return entity, nil
}
