package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"github.com/ueberboese/ueberboese-api/internal/service"
	"go.uber.org/zap"
)

// ProvideAccountDocumentStore builds the configured backend, optionally fronted by the memory cache.
func ProvideAccountDocumentStore(cfg *config.Config) (service.AccountDocumentStore, func(), error) {
	var (
		store   service.AccountDocumentStore
		cleanup = func() {}
	)

	switch cfg.AccountStore.Backend {
	case config.AccountStoreBackendFile:
		fileStore, err := NewFileAccountDocumentStore(cfg.Data.Dir)
		if err != nil {
			return nil, nil, err
		}
		store = fileStore
	case config.AccountStoreBackendRedis:
		rdb := NewRedisClient(cfg.Redis)
		store = NewRedisAccountDocumentStore(rdb, cfg.Redis.KeyPrefix)
		cleanup = func() { _ = rdb.Close() }
	case config.AccountStoreBackendS3:
		client, err := NewS3Client(context.Background(), cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		store = NewS3AccountDocumentStore(client, cfg.S3.Bucket, cfg.S3.Prefix)
	default:
		return nil, nil, fmt.Errorf("unsupported account store backend %q", cfg.AccountStore.Backend)
	}

	mc := cfg.AccountStore.MemoryCache
	if mc.Enabled {
		cached, closeCache, err := NewCachedAccountDocumentStore(store, mc.MaxCostMB<<20, time.Duration(mc.TTLSeconds)*time.Second)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("create account document cache: %w", err)
		}
		backendCleanup := cleanup
		store = cached
		cleanup = func() {
			closeCache()
			backendCleanup()
		}
	}

	logger.L().Info("account_store.ready",
		zap.String("component", "repository.account_document_store"),
		zap.String("backend", cfg.AccountStore.Backend),
		zap.Bool("memory_cache", mc.Enabled),
	)
	return store, cleanup, nil
}
