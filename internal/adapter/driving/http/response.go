package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
)

// Every response carries an "ok" discriminator; failures are always
// {"ok":false,"error":...}. Handlers never let an error cross this boundary
// as anything but that shape.

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"ok":false,"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes the failure envelope with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{OK: false, Error: message})
}

// errorResponse is the standard failure envelope.
type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// CollectionResponse is the JSON representation of one writable collection.
type CollectionResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CollectionsResponse is the body of the collection listing endpoint. Cached
// distinguishes a cache-sourced listing from a live one.
type CollectionsResponse struct {
	OK          bool                 `json:"ok"`
	Collections []CollectionResponse `json:"collections"`
	Cached      bool                 `json:"cached"`
}

// SavePageRequest is the JSON body for the save page endpoint. CollectionID
// is optional; the configured collection is used when absent.
type SavePageRequest struct {
	CollectionID string `json:"collection_id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
}

// SavePageResponse is the body returned after a successful save.
type SavePageResponse struct {
	OK            bool   `json:"ok"`
	PageID        string `json:"page_id"`
	URL           string `json:"url"`
	CollectionURL string `json:"collection_url"`
	AutoOpen      string `json:"auto_open"`
}

// TimestampRequest is the JSON body for the timestamp endpoint. Label and
// SourceURL may be omitted when Seconds is given; the handler derives them.
type TimestampRequest struct {
	CollectionID string `json:"collection_id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Label        string `json:"label"`
	Seconds      *int   `json:"seconds"`
	SourceURL    string `json:"source_url"`
}

// TimestampResponse is the body returned after a successful timestamp upsert.
type TimestampResponse struct {
	OK            bool   `json:"ok"`
	URL           string `json:"url"`
	CollectionURL string `json:"collection_url"`
	AutoOpen      string `json:"auto_open"`
	Created       bool   `json:"created"`
}

// SettingsResponse is the JSON representation of the stored settings. The
// API key itself is never echoed back; HasAPIKey only reports presence.
type SettingsResponse struct {
	OK            bool   `json:"ok"`
	CollectionID  string `json:"collection_id"`
	TitleProperty string `json:"title_property"`
	URLProperty   string `json:"url_property"`
	AutoOpen      string `json:"auto_open"`
	HasAPIKey     bool   `json:"has_api_key"`
}

// UpdateSettingsRequest is the JSON body for the settings update endpoint.
// Nil pointers leave the corresponding setting untouched.
type UpdateSettingsRequest struct {
	CollectionID  *string `json:"collection_id"`
	TitleProperty *string `json:"title_property"`
	URLProperty   *string `json:"url_property"`
	AutoOpen      *string `json:"auto_open"`
	APIKey        *string `json:"api_key"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toCollectionsResponse converts a domain collection listing to its JSON shape.
func toCollectionsResponse(collections []model.Collection, cached bool) CollectionsResponse {
	resp := CollectionsResponse{
		OK:          true,
		Collections: make([]CollectionResponse, 0, len(collections)),
		Cached:      cached,
	}
	for _, c := range collections {
		resp.Collections = append(resp.Collections, CollectionResponse{
			ID:    c.ID,
			Title: c.Title,
			URL:   c.URL,
		})
	}
	return resp
}

// toSettingsResponse converts domain settings to their JSON shape.
func toSettingsResponse(s model.Settings, hasAPIKey bool) SettingsResponse {
	return SettingsResponse{
		OK:            true,
		CollectionID:  s.CollectionID,
		TitleProperty: s.TitleProperty,
		URLProperty:   s.URLProperty,
		AutoOpen:      string(s.AutoOpen),
		HasAPIKey:     hasAPIKey,
	}
}
