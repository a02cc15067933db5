// Package notion implements the NotionClient port against the Notion HTTP API.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
	"github.com/ericfisherdev/noteclip/internal/domain/port/driven"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"

	// notionVersion is the pinned API revision sent with every request.
	notionVersion = "2022-06-28"
)

// Compile-time interface satisfaction check.
var _ driven.NotionClient = (*Client)(nil)

// Client implements the driven.NotionClient port with a hand-rolled HTTP
// client; Notion has no official Go SDK. Every call threads its context
// through, and the underlying http.Client enforces a 30-second timeout as a
// safety net alongside context cancellation.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewClient creates a Client authenticated with the given integration token.
func NewClient(token string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		token:   token,
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL. This constructor is intended for testing, allowing injection of an
// httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
	}
}

// do issues one authenticated request and decodes the JSON response into out
// (skipped when out is nil). Non-2xx statuses become *driven.RemoteError with
// the response body as the message (best effort; the status reason phrase
// when the body is empty or unreadable). Failures before an HTTP response
// exists become *driven.TransportError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling %s %s body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating %s %s request: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &driven.TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ""
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			message = strings.TrimSpace(string(data))
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &driven.RemoteError{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// richText is the minimal wire shape of one Notion rich text run.
type richText struct {
	Type string `json:"type"`
	Text struct {
		Content string `json:"content"`
		Link    *struct {
			URL string `json:"url"`
		} `json:"link,omitempty"`
	} `json:"text"`
	PlainText string `json:"plain_text,omitempty"`
}

// textRun builds a rich text run, hyperlinked when href is non-empty.
func textRun(content, href string) richText {
	var rt richText
	rt.Type = "text"
	rt.Text.Content = content
	if href != "" {
		rt.Text.Link = &struct {
			URL string `json:"url"`
		}{URL: href}
	}
	return rt
}

// blockJSON is the wire shape of one content block. Exactly one of Paragraph
// or Bullet is set, matching Type.
type blockJSON struct {
	Object    string        `json:"object"`
	Type      string        `json:"type"`
	Paragraph *richTextBody `json:"paragraph,omitempty"`
	Bullet    *richTextBody `json:"bulleted_list_item,omitempty"`
}

type richTextBody struct {
	RichText []richText `json:"rich_text"`
}

// mapBlock converts a domain content block to its wire representation.
func mapBlock(b model.Block) blockJSON {
	body := &richTextBody{RichText: []richText{textRun(b.Text, b.Href)}}

	wire := blockJSON{Object: "block", Type: string(b.Type)}
	switch b.Type {
	case model.BlockTypeBullet:
		wire.Bullet = body
	default:
		wire.Type = string(model.BlockTypeParagraph)
		wire.Paragraph = body
	}
	return wire
}

// mapBlocks converts a slice of domain blocks, preserving order.
func mapBlocks(blocks []model.Block) []blockJSON {
	wire := make([]blockJSON, 0, len(blocks))
	for _, b := range blocks {
		wire = append(wire, mapBlock(b))
	}
	return wire
}
