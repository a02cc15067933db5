package application

import (
	"context"
	"strings"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
	"github.com/ericfisherdev/noteclip/internal/domain/port/driven"
)

// degradeNoteHeading opens the body note left on a record when a value had
// no matching structured property to land in.
const degradeNoteHeading = "Saved details (because matching database properties were missing):"

// SaveService is the page-reconciliation and write engine: it creates
// records or appends timestamp notes to existing ones, resolving the target
// collection's schema fresh on every write.
type SaveService struct {
	provider *ClientProvider
	settings driven.SettingsStore
}

// NewSaveService creates a SaveService.
func NewSaveService(provider *ClientProvider, settings driven.SettingsStore) *SaveService {
	return &SaveService{
		provider: provider,
		settings: settings,
	}
}

// SaveResult is the outcome of a page creation.
type SaveResult struct {
	Record        model.Record
	CollectionURL string
	AutoOpen      model.AutoOpenMode
}

// TimestampResult is the outcome of an upsert-timestamp operation.
type TimestampResult struct {
	RecordURL     string
	CollectionURL string
	AutoOpen      model.AutoOpenMode
	Created       bool // true when no record matched the title and one was created
}

// SavePage creates a record for the given page in the collection.
// collectionID may be empty, in which case the configured collection is
// used. Schema mismatches never block the save: a url value with no
// url-typed property to hold it is written into the record body instead.
func (s *SaveService) SavePage(ctx context.Context, collectionID, title, url string) (*SaveResult, error) {
	client := s.provider.Get()
	if client == nil {
		return nil, &ConfigError{Reason: reasonNoAPIKey}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	collectionID = strings.TrimSpace(firstNonEmpty(collectionID, settings.CollectionID))
	if collectionID == "" {
		return nil, &ConfigError{Reason: reasonNoCollection}
	}
	if url == "" {
		return nil, &ConfigError{Reason: reasonMissingURL}
	}

	record, collectionURL, err := s.createRecord(ctx, client, collectionID, title, url, settings, nil)
	if err != nil {
		return nil, err
	}

	return &SaveResult{
		Record:        *record,
		CollectionURL: collectionURL,
		AutoOpen:      settings.AutoOpen,
	}, nil
}

// AddTimestamp appends a playback timestamp note to the record whose title
// exactly matches title, creating the record first when none exists. On
// append the existing record's property values are left untouched; only one
// bullet block is added. When several records share the title, the first
// query result wins (server ordering, accepted ambiguity).
func (s *SaveService) AddTimestamp(ctx context.Context, collectionID, title, url string, note model.TimestampNote) (*TimestampResult, error) {
	client := s.provider.Get()
	if client == nil {
		return nil, &ConfigError{Reason: reasonNoAPIKey}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	collectionID = strings.TrimSpace(firstNonEmpty(collectionID, settings.CollectionID))
	if collectionID == "" {
		return nil, &ConfigError{Reason: reasonNoCollection}
	}

	// Validation precedes any network call.
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ConfigError{Reason: reasonMissingTitle}
	}
	if note.Label == "" {
		return nil, &ConfigError{Reason: reasonMissingStamp}
	}

	existing, collectionURL, err := s.findByTitle(ctx, client, collectionID, title)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := client.AppendBlocks(ctx, existing.ID, []model.Block{note.Bullet()}); err != nil {
			return nil, err
		}
		return &TimestampResult{
			RecordURL:     existing.URL,
			CollectionURL: collectionURL,
			AutoOpen:      settings.AutoOpen,
		}, nil
	}

	// No match: fall back to the create path with the timestamp bullet
	// seeded as the first body child, ahead of any degrade note.
	record, collectionURL, err := s.createRecord(ctx, client, collectionID, title, url, settings, []model.Block{note.Bullet()})
	if err != nil {
		return nil, err
	}

	return &TimestampResult{
		RecordURL:     record.URL,
		CollectionURL: collectionURL,
		AutoOpen:      settings.AutoOpen,
		Created:       true,
	}, nil
}

// createRecord fetches the collection schema and creates one record,
// applying the degrade-gracefully policy for the url value. Returns the
// created record and the collection's URL.
func (s *SaveService) createRecord(
	ctx context.Context,
	client driven.NotionClient,
	collectionID, title, url string,
	settings model.Settings,
	leading []model.Block,
) (*model.Record, string, error) {
	detail, err := client.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, "", err
	}

	// The configured name is a hint: trusted only when it really is the
	// title property, else the first title-typed field wins.
	titleField := settings.TitleProperty
	if !detail.Schema.HasTitleType(titleField) {
		name, ok := detail.Schema.TitleField()
		if !ok {
			return nil, "", errNoTitleField(collectionID)
		}
		titleField = name
	}

	children := append([]model.Block(nil), leading...)

	urlField, ok := detail.Schema.ResolveURLField(settings.URLProperty)
	if !ok {
		// Missing or wrong-typed url property is not an error; the value
		// lands in the record body as a visible breadcrumb instead.
		children = append(children,
			model.Paragraph(degradeNoteHeading),
			model.Paragraph("URL: "+url),
		)
	}

	record, err := client.CreateRecord(ctx, driven.CreateRecordParams{
		CollectionID: collectionID,
		TitleField:   titleField,
		Title:        effectiveTitle(title),
		URLField:     urlField,
		URL:          url,
		Children:     children,
	})
	if err != nil {
		return nil, "", err
	}

	return record, detail.URL, nil
}

// findByTitle looks up a record by exact title match. It resolves the title
// field from a fresh schema first; a collection with no title-typed field
// cannot be queried and yields no match. Also returns the collection URL so
// callers don't refetch the schema for it.
func (s *SaveService) findByTitle(ctx context.Context, client driven.NotionClient, collectionID, title string) (*model.Record, string, error) {
	detail, err := client.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, "", err
	}

	titleField, ok := detail.Schema.TitleField()
	if !ok {
		return nil, detail.URL, nil
	}

	record, err := client.QueryRecordByTitle(ctx, collectionID, titleField, title)
	if err != nil {
		return nil, "", err
	}
	return record, detail.URL, nil
}

// effectiveTitle trims the title and substitutes "Untitled" when nothing is
// left, so the title property is never written empty.
func effectiveTitle(title string) string {
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		return trimmed
	}
	return "Untitled"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
