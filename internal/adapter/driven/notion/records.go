package notion

import (
	"context"
	"net/http"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
	"github.com/ericfisherdev/noteclip/internal/domain/port/driven"
)

// queryRequest is the body of POST /databases/{id}/query for an exact title
// match. The filter property name is dynamic, so the filter is a nested map.
type queryRequest struct {
	Filter   map[string]any `json:"filter"`
	PageSize int            `json:"page_size"`
}

type queryResponse struct {
	Results []pageJSON `json:"results"`
}

type pageJSON struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// QueryRecordByTitle returns the first page in the collection whose title
// field exactly equals title, or nil when none matches. Page size is 1; when
// several pages share a title the server's first result wins.
func (c *Client) QueryRecordByTitle(ctx context.Context, collectionID, titleField, title string) (*model.Record, error) {
	req := queryRequest{
		Filter: map[string]any{
			"property": titleField,
			"title":    map[string]any{"equals": title},
		},
		PageSize: 1,
	}

	var resp queryResponse
	if err := c.do(ctx, http.MethodPost, "/databases/"+collectionID+"/query", req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}
	return &model.Record{ID: resp.Results[0].ID, URL: resp.Results[0].URL}, nil
}

// createPageRequest is the body of POST /pages. Properties values are
// property-type specific, so both maps hold any.
type createPageRequest struct {
	Parent     pageParent     `json:"parent"`
	Properties map[string]any `json:"properties"`
	Children   []blockJSON    `json:"children,omitempty"`
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

// CreateRecord creates one page under the parent collection. The title
// property is always written; the url property only when params.URLField
// names a resolved url-typed field.
func (c *Client) CreateRecord(ctx context.Context, params driven.CreateRecordParams) (*model.Record, error) {
	props := map[string]any{
		params.TitleField: map[string]any{
			"title": []richText{textRun(params.Title, "")},
		},
	}
	if params.URLField != "" {
		props[params.URLField] = map[string]any{"url": params.URL}
	}

	req := createPageRequest{
		Parent:     pageParent{DatabaseID: params.CollectionID},
		Properties: props,
		Children:   mapBlocks(params.Children),
	}

	var resp pageJSON
	if err := c.do(ctx, http.MethodPost, "/pages", req, &resp); err != nil {
		return nil, err
	}
	return &model.Record{ID: resp.ID, URL: resp.URL}, nil
}

type appendRequest struct {
	Children []blockJSON `json:"children"`
}

// AppendBlocks appends content blocks to the end of a record's body.
func (c *Client) AppendBlocks(ctx context.Context, recordID string, blocks []model.Block) error {
	return c.do(ctx, http.MethodPatch, "/blocks/"+recordID+"/children", appendRequest{Children: mapBlocks(blocks)}, nil)
}
