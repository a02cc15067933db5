package driven

import (
	"context"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
)

// CollectionCacheStore defines the driven port for the single-slot collection
// listing cache. Get fails open: a missing or malformed entry yields
// (nil, nil) so discovery falls through to a live fetch. Put replaces the
// entire entry atomically; there is no partial update.
//
// Freshness is judged by the caller via model.CollectionCache.Fresh, since it
// depends on the caller's current credential.
type CollectionCacheStore interface {
	Get(ctx context.Context) (*model.CollectionCache, error)
	Put(ctx context.Context, cache model.CollectionCache) error
}
