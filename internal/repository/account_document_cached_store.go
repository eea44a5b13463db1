package repository

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

// cachedAccountDocumentStore puts an in-process ristretto cache in front of a slower store.
// Cost is the document size in bytes.
type cachedAccountDocumentStore struct {
	next  service.AccountDocumentStore
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewCachedAccountDocumentStore(next service.AccountDocumentStore, maxCostBytes int64, ttl time.Duration) (service.AccountDocumentStore, func(), error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, nil, err
	}
	return &cachedAccountDocumentStore{next: next, cache: cache, ttl: ttl}, cache.Close, nil
}

func (s *cachedAccountDocumentStore) Load(ctx context.Context, accountID string) ([]byte, error) {
	if v, ok := s.cache.Get(accountID); ok {
		if raw, ok := v.([]byte); ok {
			return append([]byte(nil), raw...), nil
		}
	}
	raw, err := s.next.Load(ctx, accountID)
	if err != nil || raw == nil {
		return raw, err
	}
	s.set(accountID, raw)
	return raw, nil
}

// Save writes through; a failed write evicts the cached copy.
func (s *cachedAccountDocumentStore) Save(ctx context.Context, accountID string, raw []byte) error {
	if err := s.next.Save(ctx, accountID, raw); err != nil {
		s.cache.Del(accountID)
		return err
	}
	s.set(accountID, raw)
	return nil
}

func (s *cachedAccountDocumentStore) set(accountID string, raw []byte) {
	cp := append([]byte(nil), raw...)
	if s.ttl > 0 {
		s.cache.SetWithTTL(accountID, cp, int64(len(cp)), s.ttl)
	} else {
		s.cache.Set(accountID, cp, int64(len(cp)))
	}
	s.cache.Wait()
}
