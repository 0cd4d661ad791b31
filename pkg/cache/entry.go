package cache

import (
	"encoding/json"
	"time"
)

// Entry represents one cached payload.
type Entry struct {
	// Payload is the raw fetch result.
	Payload json.RawMessage `json:"payload"`

	// FetchedAt is when the payload was fetched.
	FetchedAt time.Time `json:"fetched_at"`

	// Expires is when the entry becomes stale.
	Expires time.Time `json:"expires"`
}

// NewEntry wraps a payload fetched just now, valid for ttl.
func NewEntry(payload json.RawMessage, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Payload:   payload,
		FetchedAt: now,
		Expires:   now.Add(ttl),
	}
}

// IsExpired returns true if the cache entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
