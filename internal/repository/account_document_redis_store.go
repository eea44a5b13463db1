package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

const accountDocumentKeyPrefix = "account:"

type redisAccountDocumentStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisAccountDocumentStore stores documents under <keyPrefix>account:<accountId> with no expiry.
func NewRedisAccountDocumentStore(rdb *redis.Client, keyPrefix string) service.AccountDocumentStore {
	return &redisAccountDocumentStore{rdb: rdb, prefix: keyPrefix + accountDocumentKeyPrefix}
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func (s *redisAccountDocumentStore) Load(ctx context.Context, accountID string) ([]byte, error) {
	raw, err := s.rdb.Get(ctx, s.prefix+accountID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *redisAccountDocumentStore) Save(ctx context.Context, accountID string, raw []byte) error {
	return s.rdb.Set(ctx, s.prefix+accountID, raw, 0).Err()
}
