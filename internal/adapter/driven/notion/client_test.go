package notion_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notionadapter "github.com/ericfisherdev/noteclip/internal/adapter/driven/notion"
	"github.com/ericfisherdev/noteclip/internal/domain/model"
	"github.com/ericfisherdev/noteclip/internal/domain/port/driven"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *notionadapter.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return notionadapter.NewClientWithHTTPClient(server.Client(), server.URL, "test-token")
}

func TestListCollections_MapsAndDefaultsTitles(t *testing.T) {
	var gotBody map[string]any
	var gotAuth, gotVersion string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"id":"db-1","title":[{"plain_text":"Read "},{"plain_text":"Later"}],"url":"https://notion.so/db-1"},
			{"id":"db-2","title":[{"plain_text":"   "}],"url":"https://notion.so/db-2"},
			{"id":"db-3","title":[],"url":"https://notion.so/db-3"}
		]}`))
	})

	client := newTestClient(t, handler)
	collections, err := client.ListCollections(context.Background())

	require.NoError(t, err)
	require.Len(t, collections, 3)
	assert.Equal(t, model.Collection{ID: "db-1", Title: "Read Later", URL: "https://notion.so/db-1"}, collections[0])
	assert.Equal(t, "(Untitled database)", collections[1].Title)
	assert.Equal(t, "(Untitled database)", collections[2].Title)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "2022-06-28", gotVersion)

	// Discovery is a single capped page of databases sorted by last edit.
	assert.Equal(t, float64(100), gotBody["page_size"])
	filter := gotBody["filter"].(map[string]any)
	assert.Equal(t, "object", filter["property"])
	assert.Equal(t, "database", filter["value"])
	sort := gotBody["sort"].(map[string]any)
	assert.Equal(t, "descending", sort["direction"])
	assert.Equal(t, "last_edited_time", sort["timestamp"])
}

func TestGetCollection_PreservesSchemaOrder(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/databases/db-1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"db-1",
			"url":"https://notion.so/db-1",
			"title":[{"plain_text":"Clips"}],
			"properties":{
				"Zebra":{"id":"a","type":"multi_select","multi_select":{}},
				"Name":{"id":"b","type":"title","title":{}},
				"URL":{"id":"c","type":"url","url":{}},
				"Alpha":{"id":"d","type":"rich_text","rich_text":{}}
			}
		}`))
	})

	client := newTestClient(t, handler)
	detail, err := client.GetCollection(context.Background(), "db-1")

	require.NoError(t, err)
	assert.Equal(t, "db-1", detail.ID)
	assert.Equal(t, "Clips", detail.Title)
	assert.Equal(t, "https://notion.so/db-1", detail.URL)

	// Document order, not alphabetical.
	require.Len(t, detail.Schema, 4)
	assert.Equal(t, model.Field{Name: "Zebra", Type: "multi_select"}, detail.Schema[0])
	assert.Equal(t, model.Field{Name: "Name", Type: model.FieldTypeTitle}, detail.Schema[1])
	assert.Equal(t, model.Field{Name: "URL", Type: model.FieldTypeURL}, detail.Schema[2])
	assert.Equal(t, model.Field{Name: "Alpha", Type: model.FieldTypeRichText}, detail.Schema[3])
}

func TestQueryRecordByTitle(t *testing.T) {
	var gotBody map[string]any

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/databases/db-1/query", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":"page-1","url":"https://notion.so/page-1"}]}`))
	})

	client := newTestClient(t, handler)
	record, err := client.QueryRecordByTitle(context.Background(), "db-1", "Name", "My Talk")

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "page-1", record.ID)
	assert.Equal(t, "https://notion.so/page-1", record.URL)

	assert.Equal(t, float64(1), gotBody["page_size"])
	filter := gotBody["filter"].(map[string]any)
	assert.Equal(t, "Name", filter["property"])
	assert.Equal(t, map[string]any{"equals": "My Talk"}, filter["title"])
}

func TestQueryRecordByTitle_NoMatch(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	client := newTestClient(t, handler)
	record, err := client.QueryRecordByTitle(context.Background(), "db-1", "Name", "Nope")

	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestCreateRecord_WithURLField(t *testing.T) {
	var gotBody map[string]any

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/pages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"page-9","url":"https://notion.so/page-9"}`))
	})

	client := newTestClient(t, handler)
	record, err := client.CreateRecord(context.Background(), driven.CreateRecordParams{
		CollectionID: "db-1",
		TitleField:   "Name",
		Title:        "Example",
		URLField:     "URL",
		URL:          "https://x.test",
	})

	require.NoError(t, err)
	assert.Equal(t, "page-9", record.ID)

	parent := gotBody["parent"].(map[string]any)
	assert.Equal(t, "db-1", parent["database_id"])

	props := gotBody["properties"].(map[string]any)
	titleProp := props["Name"].(map[string]any)
	runs := titleProp["title"].([]any)
	require.Len(t, runs, 1)
	run := runs[0].(map[string]any)
	assert.Equal(t, "Example", run["text"].(map[string]any)["content"])

	urlProp := props["URL"].(map[string]any)
	assert.Equal(t, "https://x.test", urlProp["url"])

	_, hasChildren := gotBody["children"]
	assert.False(t, hasChildren)
}

func TestCreateRecord_OmitsURLPropertyAndSendsChildren(t *testing.T) {
	var gotBody map[string]any

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"page-9","url":"https://notion.so/page-9"}`))
	})

	client := newTestClient(t, handler)
	_, err := client.CreateRecord(context.Background(), driven.CreateRecordParams{
		CollectionID: "db-1",
		TitleField:   "Name",
		Title:        "Example",
		URL:          "https://x.test",
		Children: []model.Block{
			model.Bullet("- 1:30", "https://x.test?t=90s"),
			model.Paragraph("URL: https://x.test"),
		},
	})
	require.NoError(t, err)

	props := gotBody["properties"].(map[string]any)
	assert.Len(t, props, 1) // title only; no url property was resolved

	children := gotBody["children"].([]any)
	require.Len(t, children, 2)

	bullet := children[0].(map[string]any)
	assert.Equal(t, "bulleted_list_item", bullet["type"])
	bulletRuns := bullet["bulleted_list_item"].(map[string]any)["rich_text"].([]any)
	bulletRun := bulletRuns[0].(map[string]any)
	text := bulletRun["text"].(map[string]any)
	assert.Equal(t, "- 1:30", text["content"])
	assert.Equal(t, "https://x.test?t=90s", text["link"].(map[string]any)["url"])

	para := children[1].(map[string]any)
	assert.Equal(t, "paragraph", para["type"])
	paraRun := para["paragraph"].(map[string]any)["rich_text"].([]any)[0].(map[string]any)
	assert.Equal(t, "URL: https://x.test", paraRun["text"].(map[string]any)["content"])
	_, hasLink := paraRun["text"].(map[string]any)["link"]
	assert.False(t, hasLink)
}

func TestAppendBlocks_PatchesChildren(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	client := newTestClient(t, handler)
	err := client.AppendBlocks(context.Background(), "page-1", []model.Block{
		model.Bullet("- 12:04", "https://youtu.be/v?t=724s"),
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/blocks/page-1/children", gotPath)

	children := gotBody["children"].([]any)
	require.Len(t, children, 1)
}

func TestDo_RemoteErrorCarriesBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"object":"error","message":"body validation failed"}`))
	})

	client := newTestClient(t, handler)
	_, err := client.ListCollections(context.Background())

	var remoteErr *driven.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusBadRequest, remoteErr.Status)
	assert.Contains(t, remoteErr.Message, "body validation failed")
}

func TestDo_RemoteErrorFallsBackToReasonPhrase(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client := newTestClient(t, handler)
	_, err := client.ListCollections(context.Background())

	var remoteErr *driven.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusServiceUnavailable, remoteErr.Status)
	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), remoteErr.Message)
}

func TestDo_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close() // Nothing listening anymore.

	client := notionadapter.NewClientWithHTTPClient(http.DefaultClient, url, "test-token")
	_, err := client.ListCollections(context.Background())

	var transportErr *driven.TransportError
	require.ErrorAs(t, err, &transportErr)

	var remoteErr *driven.RemoteError
	assert.False(t, errors.As(err, &remoteErr))
}
