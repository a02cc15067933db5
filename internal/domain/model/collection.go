package model

// Collection is a Notion database that pages can be saved into.
// Immutable once fetched; identity is ID.
type Collection struct {
	ID    string
	Title string
	URL   string
}

// CollectionDetail is a Collection plus its property schema, fetched fresh
// from the API whenever a write needs to reconcile against it.
type CollectionDetail struct {
	Collection
	Schema Schema
}
