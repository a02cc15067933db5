// Package httphandler is the HTTP driving adapter serving the JSON API the
// browser extension (and anything else) talks to.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ericfisherdev/noteclip/internal/application"
	"github.com/ericfisherdev/noteclip/internal/domain/model"
	"github.com/ericfisherdev/noteclip/internal/domain/port/driven"
)

// credentialName is the credentials-table key for the Notion API key.
const credentialName = "notion_api_key"

// ClientFactory builds a NotionClient for a credential. Injected so the
// handler can hot-swap clients without importing the notion adapter.
type ClientFactory func(token string) driven.NotionClient

// Handler is the HTTP driving adapter for the save/timestamp/discovery API.
type Handler struct {
	discovery   *application.DiscoveryService
	saver       *application.SaveService
	settings    driven.SettingsStore
	credentials driven.CredentialStore
	provider    *application.ClientProvider
	newClient   ClientFactory
	logger      *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	discovery *application.DiscoveryService,
	saver *application.SaveService,
	settings driven.SettingsStore,
	credentials driven.CredentialStore,
	provider *application.ClientProvider,
	newClient ClientFactory,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		discovery:   discovery,
		saver:       saver,
		settings:    settings,
		credentials: credentials,
		provider:    provider,
		newClient:   newClient,
		logger:      logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with request-ID, logging, and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/collections", h.ListCollections)
	mux.HandleFunc("POST /api/v1/pages", h.SavePage)
	mux.HandleFunc("POST /api/v1/timestamps", h.AddTimestamp)
	mux.HandleFunc("GET /api/v1/settings", h.GetSettings)
	mux.HandleFunc("PUT /api/v1/settings", h.UpdateSettings)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = requestIDMiddleware(wrapped)

	return wrapped
}

// ListCollections returns the writable collections, from cache when fresh.
// ?refresh=1 forces a live fetch.
func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "1"

	collections, cached, err := h.discovery.ListCollections(r.Context(), force)
	if err != nil {
		h.writeServiceError(w, r, "list collections", err)
		return
	}

	writeJSON(w, http.StatusOK, toCollectionsResponse(collections, cached))
}

// SavePage creates a record for the submitted page.
func (h *Handler) SavePage(w http.ResponseWriter, r *http.Request) {
	var req SavePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.saver.SavePage(r.Context(), req.CollectionID, req.Title, req.URL)
	if err != nil {
		h.writeServiceError(w, r, "save page", err)
		return
	}

	writeJSON(w, http.StatusOK, SavePageResponse{
		OK:            true,
		PageID:        result.Record.ID,
		URL:           result.Record.URL,
		CollectionURL: result.CollectionURL,
		AutoOpen:      string(result.AutoOpen),
	})
}

// AddTimestamp appends a playback timestamp to the record matching the
// title, creating it when absent. The note label and source URL are derived
// from seconds when not supplied directly.
func (h *Handler) AddTimestamp(w http.ResponseWriter, r *http.Request) {
	var req TimestampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note := model.TimestampNote{Label: req.Label, SourceURL: req.SourceURL}
	if req.Seconds != nil {
		if note.Label == "" {
			note.Label = application.FormatPlayback(*req.Seconds)
		}
		if note.SourceURL == "" && req.URL != "" {
			note.SourceURL = application.StampURL(req.URL, *req.Seconds)
		}
	}

	result, err := h.saver.AddTimestamp(r.Context(), req.CollectionID, req.Title, req.URL, note)
	if err != nil {
		h.writeServiceError(w, r, "add timestamp", err)
		return
	}

	writeJSON(w, http.StatusOK, TimestampResponse{
		OK:            true,
		URL:           result.RecordURL,
		CollectionURL: result.CollectionURL,
		AutoOpen:      string(result.AutoOpen),
		Created:       result.Created,
	})
}

// GetSettings returns the stored preferences.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "get settings", err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings, h.provider.HasClient()))
}

// UpdateSettings updates preferences and, when an API key is included,
// stores it encrypted and hot-swaps the Notion client.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "update settings", err)
		return
	}

	if req.CollectionID != nil {
		settings.CollectionID = strings.TrimSpace(*req.CollectionID)
	}
	if req.TitleProperty != nil {
		settings.TitleProperty = *req.TitleProperty
	}
	if req.URLProperty != nil {
		settings.URLProperty = *req.URLProperty
	}
	if req.AutoOpen != nil {
		mode := model.AutoOpenMode(*req.AutoOpen)
		if !mode.Valid() {
			writeError(w, http.StatusBadRequest, "auto_open must be one of none, page, database")
			return
		}
		settings.AutoOpen = mode
	}

	if err := h.settings.Put(r.Context(), settings); err != nil {
		h.writeServiceError(w, r, "update settings", err)
		return
	}

	if req.APIKey != nil {
		key := strings.TrimSpace(*req.APIKey)
		if key == "" {
			writeError(w, http.StatusBadRequest, "api_key must not be empty")
			return
		}
		if err := h.credentials.Set(r.Context(), credentialName, key); err != nil {
			h.writeServiceError(w, r, "store api key", err)
			return
		}
		h.provider.Replace(h.newClient(key), model.Fingerprint(key))
		h.logger.Info("notion client replaced", "fingerprint", model.Fingerprint(key))
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings, h.provider.HasClient()))
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		OK:     true,
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// writeServiceError maps service failures onto the error envelope. Every
// failure surfaces as a human-readable string; the status code only hints at
// where the fault lies.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var (
		configErr    *application.ConfigError
		schemaErr    *application.SchemaError
		remoteErr    *driven.RemoteError
		transportErr *driven.TransportError
	)

	switch {
	case errors.As(err, &configErr):
		writeError(w, http.StatusBadRequest, configErr.Error())
	case errors.Is(err, driven.ErrEncryptionKeyNotSet):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &schemaErr):
		writeError(w, http.StatusUnprocessableEntity, schemaErr.Error())
	case errors.As(err, &remoteErr):
		h.logger.Warn(op+" failed upstream", "status", remoteErr.Status, "error", remoteErr.Message)
		writeError(w, http.StatusBadGateway, remoteErr.Error())
	case errors.As(err, &transportErr):
		h.logger.Warn(op+" failed to reach notion", "error", err)
		writeError(w, http.StatusBadGateway, transportErr.Error())
	default:
		h.logger.Error(op+" failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
