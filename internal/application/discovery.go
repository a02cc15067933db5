package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
	"github.com/ericfisherdev/noteclip/internal/domain/port/driven"
)

// DiscoveryService lists the collections a credential can write to, backed
// by a time-boxed, credential-scoped cache so repeated popup opens don't
// re-run the expensive search call.
type DiscoveryService struct {
	provider *ClientProvider
	cache    driven.CollectionCacheStore
	now      func() time.Time
}

// NewDiscoveryService creates a DiscoveryService.
func NewDiscoveryService(provider *ClientProvider, cache driven.CollectionCacheStore) *DiscoveryService {
	return &DiscoveryService{
		provider: provider,
		cache:    cache,
		now:      time.Now,
	}
}

// ListCollections returns the writable collections. Unless force is set, a
// cache entry younger than model.CacheTTL and fingerprint-matched to the
// current credential is returned without a network call (cached=true). Any
// live fetch overwrites the cache wholesale before returning.
func (s *DiscoveryService) ListCollections(ctx context.Context, force bool) ([]model.Collection, bool, error) {
	client := s.provider.Get()
	if client == nil {
		return nil, false, &ConfigError{Reason: reasonNoAPIKey}
	}
	fingerprint := s.provider.Fingerprint()

	if !force {
		entry, err := s.cache.Get(ctx)
		if err != nil {
			// Fail open: an unreadable cache only costs a live fetch.
			slog.Warn("collection cache read failed", "error", err)
		}
		if entry.Fresh(s.now(), fingerprint) {
			return entry.Collections, true, nil
		}
	}

	collections, err := client.ListCollections(ctx)
	if err != nil {
		return nil, false, err
	}

	err = s.cache.Put(ctx, model.CollectionCache{
		Fingerprint: fingerprint,
		FetchedAt:   s.now(),
		Collections: collections,
	})
	if err != nil {
		// Best effort: a failed cache write must not fail the listing.
		slog.Warn("collection cache write failed", "error", err)
	}

	return collections, false, nil
}
