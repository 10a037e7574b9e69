package profile

import (
	"fmt"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of profiles a Cache keeps.
const DefaultCacheSize = 64

// Cache keeps parsed profiles keyed by path. An entry is reused while the
// file's size and modification time are unchanged.
type Cache struct {
	entries *lru.Cache[string, cacheEntry]
}

type cacheEntry struct {
	profile Profile
	modTime time.Time
	size    int64
}

// NewCache creates a cache holding up to size profiles.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile cache: %w", err)
	}

	return &Cache{entries: entries}, nil
}

// Load returns the profile at path, reading it only when the cached copy is
// missing or stale. Callers get their own copy.
func (c *Cache) Load(path string) (*Profile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat profile %s: %w", path, err)
	}

	if e, ok := c.entries.Get(path); ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		p := e.profile
		return &p, nil
	}

	p, err := LoadFile(path)
	if err != nil {
		c.entries.Remove(path)
		return nil, err
	}

	c.entries.Add(path, cacheEntry{profile: *p, modTime: info.ModTime(), size: info.Size()})

	return p, nil
}

// Len returns the number of cached profiles.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached profile.
func (c *Cache) Purge() {
	c.entries.Purge()
}
