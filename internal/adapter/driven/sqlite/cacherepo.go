package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
	"github.com/ericfisherdev/noteclip/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CollectionCacheStore = (*CacheRepo)(nil)

// CacheRepo is the SQLite implementation of the CollectionCacheStore port.
// The cache occupies a single row; every Put replaces it wholesale.
type CacheRepo struct {
	db *DB
}

// NewCacheRepo creates a new CacheRepo.
func NewCacheRepo(db *DB) *CacheRepo {
	return &CacheRepo{db: db}
}

// Get returns the cached collection listing, or (nil, nil) when no entry
// exists. A row that cannot be parsed is treated the same as a missing row:
// the cache fails open and discovery falls through to a live fetch.
func (r *CacheRepo) Get(ctx context.Context) (*model.CollectionCache, error) {
	const query = `SELECT fingerprint, fetched_at, payload FROM collection_cache WHERE id = 1`

	var fingerprint, fetchedAt, payload string
	err := r.db.Reader.QueryRowContext(ctx, query).Scan(&fingerprint, &fetchedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection cache: %w", err)
	}

	parsedAt, err := parseTime(fetchedAt)
	if err != nil {
		slog.Warn("collection cache has unparseable fetched_at, ignoring entry", "error", err)
		return nil, nil
	}

	var collections []model.Collection
	if err := json.Unmarshal([]byte(payload), &collections); err != nil {
		slog.Warn("collection cache payload is malformed, ignoring entry", "error", err)
		return nil, nil
	}

	return &model.CollectionCache{
		Fingerprint: fingerprint,
		FetchedAt:   parsedAt,
		Collections: collections,
	}, nil
}

// Put replaces the cache entry. The fixed id of 1 plus the single writer
// connection gives the atomic whole-entry replacement callers rely on.
func (r *CacheRepo) Put(ctx context.Context, cache model.CollectionCache) error {
	payload, err := json.Marshal(cache.Collections)
	if err != nil {
		return fmt.Errorf("marshal collection cache payload: %w", err)
	}

	const query = `INSERT OR REPLACE INTO collection_cache (id, fingerprint, fetched_at, payload) VALUES (1, ?, ?, ?)`
	_, err = r.db.Writer.ExecContext(ctx, query, cache.Fingerprint, cache.FetchedAt.UTC().Format(time.RFC3339Nano), string(payload))
	if err != nil {
		return fmt.Errorf("put collection cache: %w", err)
	}
	return nil
}
