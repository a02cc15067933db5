package driven

import (
	"context"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
)

// CreateRecordParams carries everything needed to create one page. TitleField
// must name a title-typed property; URLField may be empty, in which case no
// url property is written and the caller is expected to have added a degrade
// note to Children instead.
type CreateRecordParams struct {
	CollectionID string
	TitleField   string
	Title        string
	URLField     string
	URL          string
	Children     []model.Block
}

// NotionClient defines the driven port for the Notion API. Implementations
// return *RemoteError for protocol failures (non-2xx) and *TransportError
// for network failures, so callers can tell the two apart; nothing in this
// codebase retries either.
type NotionClient interface {
	// ListCollections returns up to 100 databases the credential can see,
	// most recently edited first. Results past the first page are not
	// fetched (known cap).
	ListCollections(ctx context.Context) ([]model.Collection, error)

	// GetCollection fetches a database's schema and URL. Called fresh on
	// every write so a stale schema can never direct a write at a deleted
	// or renamed property.
	GetCollection(ctx context.Context, collectionID string) (*model.CollectionDetail, error)

	// QueryRecordByTitle returns the first page whose titleField exactly
	// equals title, or nil when no page matches.
	QueryRecordByTitle(ctx context.Context, collectionID, titleField, title string) (*model.Record, error)

	// CreateRecord creates a page under the given collection.
	CreateRecord(ctx context.Context, params CreateRecordParams) (*model.Record, error)

	// AppendBlocks appends content blocks to an existing record's body.
	AppendBlocks(ctx context.Context, recordID string, blocks []model.Block) error
}
