package repository

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"MarketLens/internal/domain/models"
	domrepo "MarketLens/internal/domain/repository"
)

// SnapshotCacheSchema creates the append-only cache table. Rows are only ever
// inserted; reads pick the newest unexpired row per key.
const SnapshotCacheSchema = `
CREATE TABLE IF NOT EXISTS snapshot_cache (
    source      LowCardinality(String),
    identifier  String,
    sub_key     String,
    payload     String,
    written_at  DateTime64(3),
    valid_until DateTime64(3)
) ENGINE = MergeTree
ORDER BY (source, identifier, sub_key, written_at)
TTL toDateTime(valid_until) + INTERVAL 7 DAY
`

// ClickHouseCacheStore implements CacheStore over the snapshot_cache table.
type ClickHouseCacheStore struct {
	db     *sql.DB
	table  string
	closer io.Closer
}

var _ domrepo.CacheStore = (*ClickHouseCacheStore)(nil)

func NewClickHouseCacheStore(db *sql.DB) *ClickHouseCacheStore {
	return &ClickHouseCacheStore{db: db, table: "snapshot_cache"}
}

// SetCloser injects the owning client so Close can release the connection.
func (s *ClickHouseCacheStore) SetCloser(c io.Closer) { s.closer = c }

func (s *ClickHouseCacheStore) Init(ctx context.Context) error {
	return nil // schema init in pkg
}

func (s *ClickHouseCacheStore) Set(ctx context.Context, source models.Source, identifier, subKey string, payload []byte, ttl time.Duration) error {
	now := time.Now()
	q := fmt.Sprintf("INSERT INTO %s (source, identifier, sub_key, payload, written_at, valid_until) VALUES (?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		string(source),
		identifier,
		subKey,
		string(payload),
		now,
		now.Add(ttl),
	)
	return err
}

func (s *ClickHouseCacheStore) Get(ctx context.Context, source models.Source, identifier, subKey string) ([]byte, error) {
	q := fmt.Sprintf("SELECT payload FROM %s WHERE source = ? AND identifier = ? AND sub_key = ? AND valid_until > ? ORDER BY written_at DESC LIMIT 1", s.table)
	row := s.db.QueryRowContext(ctx, q, string(source), identifier, subKey, time.Now())
	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, domrepo.ErrMiss
		}
		return nil, err
	}
	return []byte(payload), nil
}

func (s *ClickHouseCacheStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseCacheStore) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
