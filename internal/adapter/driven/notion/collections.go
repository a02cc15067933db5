package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
)

// untitledCollection is the display title used when a database's rich text
// title collapses to nothing.
const untitledCollection = "(Untitled database)"

// searchRequest is the body of the database discovery call.
type searchRequest struct {
	Filter   searchFilter `json:"filter"`
	Sort     searchSort   `json:"sort"`
	PageSize int          `json:"page_size"`
}

type searchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type searchSort struct {
	Direction string `json:"direction"`
	Timestamp string `json:"timestamp"`
}

type searchResponse struct {
	Results []struct {
		ID    string `json:"id"`
		Title []struct {
			PlainText string `json:"plain_text"`
		} `json:"title"`
		URL string `json:"url"`
	} `json:"results"`
}

// ListCollections returns the databases visible to the token, most recently
// edited first. Notion has no direct "list databases" endpoint; search with
// an object filter is the documented route. Only the first page of 100 is
// fetched — a deliberate cap, not an oversight.
func (c *Client) ListCollections(ctx context.Context) ([]model.Collection, error) {
	req := searchRequest{
		Filter:   searchFilter{Property: "object", Value: "database"},
		Sort:     searchSort{Direction: "descending", Timestamp: "last_edited_time"},
		PageSize: 100,
	}

	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, "/search", req, &resp); err != nil {
		return nil, err
	}

	collections := make([]model.Collection, 0, len(resp.Results))
	for _, db := range resp.Results {
		var sb strings.Builder
		for _, run := range db.Title {
			sb.WriteString(run.PlainText)
		}
		title := strings.TrimSpace(sb.String())
		if title == "" {
			title = untitledCollection
		}
		collections = append(collections, model.Collection{
			ID:    db.ID,
			Title: title,
			URL:   db.URL,
		})
	}
	return collections, nil
}

// databaseResponse is the wire shape of GET /databases/{id}. Properties keeps
// the raw JSON so decodeSchema can recover document order.
type databaseResponse struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Title      []struct {
		PlainText string `json:"plain_text"`
	} `json:"title"`
	Properties json.RawMessage `json:"properties"`
}

// GetCollection fetches a database's schema and URL. Writers call this fresh
// on every save; schemas are never cached.
func (c *Client) GetCollection(ctx context.Context, collectionID string) (*model.CollectionDetail, error) {
	var resp databaseResponse
	if err := c.do(ctx, http.MethodGet, "/databases/"+collectionID, nil, &resp); err != nil {
		return nil, err
	}

	schema, err := decodeSchema(resp.Properties)
	if err != nil {
		return nil, fmt.Errorf("decoding schema for collection %s: %w", collectionID, err)
	}

	var sb strings.Builder
	for _, run := range resp.Title {
		sb.WriteString(run.PlainText)
	}

	return &model.CollectionDetail{
		Collection: model.Collection{
			ID:    resp.ID,
			Title: strings.TrimSpace(sb.String()),
			URL:   resp.URL,
		},
		Schema: schema,
	}, nil
}

// decodeSchema walks the properties object token by token so the resulting
// schema preserves document order. A plain map decode would randomize it,
// and "first title-typed field" must mean first in the document.
func decodeSchema(raw json.RawMessage) (model.Schema, error) {
	if len(raw) == 0 {
		return model.Schema{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(string(raw)))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("properties is not a JSON object")
	}

	var schema model.Schema
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected properties key token %v", keyTok)
		}

		var def struct {
			Type string `json:"type"`
		}
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("decoding property %q: %w", name, err)
		}

		schema = append(schema, model.Field{Name: name, Type: model.FieldType(def.Type)})
	}

	if schema == nil {
		schema = model.Schema{}
	}
	return schema, nil
}
