package cache

import "time"

// Entry represents a cached build result
type Entry struct {
	// Key is the cache key the entry was stored under
	// Computed from: module version summary + core version
	Key string `json:"key"`

	// Value is the compiled bundle text
	Value string `json:"value"`

	// CreatedAt is when this entry was stored
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when this entry stops being served
	// Zero means the entry never expires
	ExpiresAt time.Time `json:"expires_at"`
}

func newEntry(key, value string, now time.Time, ttl time.Duration) Entry {
	e := Entry{
		Key:       key,
		Value:     value,
		CreatedAt: now,
	}

	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}

	return e
}

// Expired reports whether the entry is no longer valid at now
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}
