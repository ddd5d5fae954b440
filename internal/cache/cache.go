// Package cache provides build caching for compiled highlight.js bundles.
//
// Compiling a bundle means running Closure Compiler over the core file and
// every selected language module, which takes seconds. The cache stores the
// final rewritten bundle text under a key derived from:
//
//  1. The version summary of the requested modules (md5, hex encoded)
//  2. The version of the core runtime file
//
// Entries carry an expiry time and are treated as absent once it has passed.
// Bolt keeps entries in a BoltDB file so they survive between runs; Memory
// keeps them in-process.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const (
	// DefaultCacheDir is the default cache directory name
	DefaultCacheDir = ".hlpack-cache"

	// bucketName is the BoltDB bucket name for cache entries
	bucketName = "bundles"
)

// Bolt manages cached bundles using BoltDB
type Bolt struct {
	db   *bbolt.DB
	root string // Root directory for cache (.hlpack-cache/)
	now  func() time.Time
}

// Open creates a new BoltDB backed cache
// If cacheDir is empty, uses DefaultCacheDir in current working directory
func Open(cacheDir string) (*Bolt, error) {
	if cacheDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}

		cacheDir = filepath.Join(cwd, DefaultCacheDir)
	}

	// Ensure cache directory exists
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(cacheDir, "cache.db")
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}

	return &Bolt{
		db:   db,
		root: cacheDir,
		now:  time.Now,
	}, nil
}

// Close closes the cache database
func (c *Bolt) Close() error {
	if c.db != nil {
		return c.db.Close()
	}

	return nil
}

// Dir returns the cache directory
func (c *Bolt) Dir() string {
	return c.root
}

// Get retrieves a cached bundle
// Returns ok == false on a miss or when the entry has expired
func (c *Bolt) Get(key string) (string, bool, error) {
	var entry Entry
	var found bool

	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		data := b.Get([]byte(key))
		if data == nil {
			return nil // Cache miss
		}

		found = true
		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if !found || entry.Expired(c.now()) {
		return "", false, nil
	}

	return entry.Value, true, nil
}

// Set stores a bundle under key for ttl
func (c *Bolt) Set(key, value string, ttl time.Duration) error {
	entry := newEntry(key, value, c.now(), ttl)

	err := c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		return b.Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}

	return nil
}

// Prune removes expired entries and returns how many were removed
func (c *Bolt) Prune() (int, error) {
	now := c.now()
	removed := 0

	err := c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		var expired [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil || entry.Expired(now) {
				// Keys are only valid during the transaction
				expired = append(expired, append([]byte(nil), k...))
			}

			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range expired {
			if err := b.Delete(k); err != nil {
				return err
			}
		}

		removed = len(expired)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}

	return removed, nil
}

// Clear removes all cache entries
func (c *Bolt) Clear() error {
	err := c.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket([]byte(bucketName))
	})
	if err != nil {
		return err
	}

	// Recreate bucket
	return c.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
}

// Stats returns the number of entries and the total size of cached bundles
func (c *Bolt) Stats() (int, int64, error) {
	var count int
	var totalSize int64

	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		return b.ForEach(func(_, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return nil // Skip unreadable entries
			}

			count++
			totalSize += int64(len(entry.Value))
			return nil
		})
	})
	if err != nil {
		return 0, 0, err
	}

	return count, totalSize, nil
}
