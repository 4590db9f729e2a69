package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"MarketLens/internal/domain/models"
	domrepo "MarketLens/internal/domain/repository"
	"MarketLens/pkg/cache"
)

func newMemoryStore(t *testing.T) *KVCacheStore {
	t.Helper()
	mem := cache.NewMemoryCache(cache.WithMemoryMaxSize(100), cache.WithMemoryCleanup(time.Minute))
	t.Cleanup(func() { mem.Close() })
	return NewKVCacheStore(mem)
}

func TestKVCacheRoundTrip(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	payload := []byte(`{"score": 42}`)
	if err := s.Set(ctx, models.SourceEquity, "AAPL", "", payload, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, models.SourceEquity, "AAPL", "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch: %s", got)
	}
}

func TestKVCacheMiss(t *testing.T) {
	s := newMemoryStore(t)
	_, err := s.Get(context.Background(), models.SourceMacro, "vix", "")
	if !errors.Is(err, domrepo.ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}

func TestKVCacheKeysAreIndependent(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()
	if err := s.Set(ctx, models.SourceSentiment, "TSLA", "expert1", []byte("a"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := s.Get(ctx, models.SourceSentiment, "TSLA", "expert2"); !errors.Is(err, domrepo.ErrMiss) {
		t.Fatalf("expected miss on different sub key, got %v", err)
	}
}

func TestKVCacheExpiry(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()
	if err := s.Set(ctx, models.SourceMacro, "snapshot", "", []byte("x"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, err := s.Get(ctx, models.SourceMacro, "snapshot", ""); !errors.Is(err, domrepo.ErrMiss) {
		t.Fatalf("expected miss after expiry, got %v", err)
	}
}
