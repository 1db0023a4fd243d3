// Package cache is a time-boxed (repo, query-key) -> JSON blob store
// backed by a single bbolt file. It only ever holds raw upstream node
// lists, never derived reports.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// DefaultTTL is the freshness window for cached queries.
const DefaultTTL = time.Hour

// Cache wraps a bbolt database with one bucket per repository and one
// entry per logical query name.
type Cache struct {
	db  *bolt.DB
	ttl time.Duration
}

type entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}

// DefaultPath returns the cache database location, ~/.ghscope/cache.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ghscope", "cache.db"), nil
}

// Open opens (creating if needed) the cache database at path.
func Open(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error { return c.db.Close() }

// Get unmarshals a fresh cached value into v, reporting a miss when the
// entry is absent or older than the TTL.
func (c *Cache) Get(repo, key string, v any) (bool, error) {
	return c.get(repo, key, v, false)
}

// GetStale is Get without the freshness check, for offline mode.
func (c *Cache) GetStale(repo, key string, v any) (bool, error) {
	return c.get(repo, key, v, true)
}

func (c *Cache) get(repo, key string, v any, ignoreTTL bool) (bool, error) {
	var raw []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(repo))
		if b == nil {
			return nil
		}
		if data := b.Get([]byte(key)); data != nil {
			raw = append([]byte(nil), data...)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to read cache: %w", err)
	}
	if raw == nil {
		return false, nil
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// Corrupt entry: treat as a miss, it will be overwritten.
		return false, nil
	}
	if !ignoreTTL && time.Since(e.FetchedAt) > c.ttl {
		return false, nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}
	return true, nil
}

// Put stores a value under (repo, key) with the current fetch time.
func (c *Cache) Put(repo, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	raw, err := json.Marshal(entry{FetchedAt: time.Now(), Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(repo))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), raw)
	})
}

// Clear drops one repository's entries, or everything when repo is empty.
func (c *Cache) Clear(repo string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		if repo != "" {
			if tx.Bucket([]byte(repo)) == nil {
				return nil
			}
			return tx.DeleteBucket([]byte(repo))
		}
		var names [][]byte
		if err := tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, append([]byte(nil), name...))
			return nil
		}); err != nil {
			return err
		}
		for _, name := range names {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}

// Stats reports the number of cached entries and their stored size in
// bytes, across all repositories.
func (c *Cache) Stats() (int, int64, error) {
	var count int
	var size int64
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(_ []byte, b *bolt.Bucket) error {
			return b.ForEach(func(k, v []byte) error {
				count++
				size += int64(len(k) + len(v))
				return nil
			})
		})
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to scan cache: %w", err)
	}
	return count, size, nil
}
