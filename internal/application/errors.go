package application

import "fmt"

// ConfigError reports missing configuration or caller input (no API key, no
// collection selected, empty title). It is terminal: the message is surfaced
// to the user verbatim and nothing is retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return e.Reason }

// SchemaError reports that the target collection cannot satisfy a hard
// schema requirement. The only case today is a collection without any
// title-typed property, which Notion databases are required to have.
type SchemaError struct {
	CollectionID string
	Reason       string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("collection %s: %s", e.CollectionID, e.Reason)
}

// errNoTitleField builds the SchemaError for a collection with no
// title-typed property.
func errNoTitleField(collectionID string) *SchemaError {
	return &SchemaError{
		CollectionID: collectionID,
		Reason:       "no title property found; Notion databases must have a title column",
	}
}

// Shared ConfigError reasons.
const (
	reasonNoAPIKey      = "missing Notion API key: set it in settings"
	reasonNoCollection  = "no collection selected: choose one in settings or pass a collection id"
	reasonMissingURL    = "missing page url"
	reasonMissingTitle  = "missing page title"
	reasonMissingStamp  = "missing timestamp"
)
