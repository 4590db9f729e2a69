package repository

import (
	"context"
	"errors"
	"time"

	"MarketLens/internal/domain/models"
)

// ErrMiss is returned by CacheStore.Get when no unexpired row exists.
var ErrMiss = errors.New("cache miss")

// CacheStore is the append-only snapshot cache. Set inserts a new row valid
// until now+ttl; Get returns the newest unexpired payload or ErrMiss. Rows are
// never updated or deleted.
type CacheStore interface {
	Init(ctx context.Context) error
	Set(ctx context.Context, source models.Source, identifier, subKey string, payload []byte, ttl time.Duration) error
	Get(ctx context.Context, source models.Source, identifier, subKey string) ([]byte, error)
	Health(ctx context.Context) error
	Close() error
}

// Publisher pushes finished analyses to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, a *models.CombinedAnalysis) error
	Close() error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordCollectorDuration(source string, seconds float64)
	RecordCacheHit(source string)
	RecordCacheMiss(source string)
	RecordSourceScore(source, ticker string, score float64)
	RecordError(kind string)
}
