package repository

import (
	"context"
	"errors"
	"io"
	"time"

	"MarketLens/internal/domain/models"
	domrepo "MarketLens/internal/domain/repository"
	"MarketLens/pkg/cache"
)

// KVCacheStore adapts a key-value cache backend (redis, in-memory or layered)
// to the CacheStore interface. Unlike the ClickHouse store there is no row
// history; each Set overwrites the key, which still satisfies the
// newest-unexpired-wins read semantics.
type KVCacheStore struct {
	kv     cache.Service
	closer io.Closer
}

var _ domrepo.CacheStore = (*KVCacheStore)(nil)

func NewKVCacheStore(kv cache.Service) *KVCacheStore {
	return &KVCacheStore{kv: kv}
}

// SetCloser injects the backend client so Close can release it.
func (s *KVCacheStore) SetCloser(c io.Closer) { s.closer = c }

func cacheKey(source models.Source, identifier, subKey string) string {
	return cache.GenerateKeyWithParams("snapshot", string(source), identifier, subKey)
}

func (s *KVCacheStore) Init(ctx context.Context) error { return nil }

func (s *KVCacheStore) Set(ctx context.Context, source models.Source, identifier, subKey string, payload []byte, ttl time.Duration) error {
	return s.kv.Set(ctx, cacheKey(source, identifier, subKey), string(payload), ttl)
}

func (s *KVCacheStore) Get(ctx context.Context, source models.Source, identifier, subKey string) ([]byte, error) {
	var payload string
	err := s.kv.Get(ctx, cacheKey(source, identifier, subKey), &payload)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, domrepo.ErrMiss
		}
		return nil, err
	}
	return []byte(payload), nil
}

func (s *KVCacheStore) Health(ctx context.Context) error {
	_, err := s.kv.Exists(ctx, cacheKey(models.SourceMacro, "health", ""))
	return err
}

func (s *KVCacheStore) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
