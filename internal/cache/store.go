package cache

import "time"

// DefaultTTL is how long a compiled bundle stays valid in the cache
const DefaultTTL = 4 * time.Hour

// Store is a key/value store for compiled bundles.
//
// Get reports ok == false for keys that are missing or expired.
// Implementations must be safe for concurrent use; two builders racing on
// the same key may both miss and both Set, the last write wins.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string, ttl time.Duration) error
}

// Nop is a Store that never hits and discards every write
type Nop struct{}

func (Nop) Get(string) (string, bool, error) {
	return "", false, nil
}

func (Nop) Set(string, string, time.Duration) error {
	return nil
}
