package model

import "time"

// CacheTTL is how long a cached collection listing stays fresh.
const CacheTTL = 6 * time.Hour

// Fingerprint returns the last 8 characters of a credential, used as a weak
// identity check for cache validity without persisting the secret twice.
func Fingerprint(credential string) string {
	if len(credential) <= 8 {
		return credential
	}
	return credential[len(credential)-8:]
}

// CollectionCache is the persisted result of a collection discovery call,
// scoped to the credential that produced it. Replaced wholesale on refresh,
// never partially updated.
type CollectionCache struct {
	Fingerprint string
	FetchedAt   time.Time
	Collections []Collection
}

// Fresh reports whether the entry may be served without a network call:
// younger than CacheTTL and produced under a credential with a matching
// fingerprint. Freshness lives here rather than in the store because it
// depends on the caller's current credential, not the entry alone.
func (c *CollectionCache) Fresh(now time.Time, fingerprint string) bool {
	if c == nil {
		return false
	}
	return now.Sub(c.FetchedAt) < CacheTTL && c.Fingerprint == fingerprint
}
