package application

import (
	"sync"

	"github.com/ericfisherdev/noteclip/internal/domain/port/driven"
)

// ClientProvider enables runtime hot-swap of the Notion client. It holds a
// mutex-protected reference to the current driven.NotionClient plus the
// fingerprint (last 8 characters) of the credential the client was built
// with, so credential updates take effect without restarting and cache
// freshness checks never need the full secret.
type ClientProvider struct {
	mu          sync.RWMutex
	client      driven.NotionClient
	fingerprint string
}

// NewClientProvider creates a provider with the given initial client and
// credential fingerprint. client may be nil when no credential is available
// at startup.
func NewClientProvider(client driven.NotionClient, fingerprint string) *ClientProvider {
	return &ClientProvider{
		client:      client,
		fingerprint: fingerprint,
	}
}

// Get returns the current Notion client. Callers should check for nil if the
// provider was created without an initial credential.
func (p *ClientProvider) Get() driven.NotionClient {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client
}

// Fingerprint returns the fingerprint of the credential behind the current
// client.
func (p *ClientProvider) Fingerprint() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fingerprint
}

// Replace swaps the current client and fingerprint. Used when the credential
// is updated through the settings API; the next Get() sees the new client.
func (p *ClientProvider) Replace(client driven.NotionClient, fingerprint string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client = client
	p.fingerprint = fingerprint
}

// HasClient returns true if a non-nil client is currently held.
func (p *ClientProvider) HasClient() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client != nil
}
