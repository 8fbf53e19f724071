package env

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// CachingLocator memoizes another Locator. Results, including misses, are kept
// until Reset is called. Safe for concurrent use.
type CachingLocator struct {
	inner Locator

	mu      sync.Mutex
	entries map[uint64]string
	hits    int
	misses  int
}

// NewCachingLocator wraps inner; a nil inner searches the filesystem.
func NewCachingLocator(inner Locator) *CachingLocator {
	if inner == nil {
		inner = FSLocator{}
	}
	return &CachingLocator{
		inner:   inner,
		entries: make(map[uint64]string),
	}
}

// Locate implements Locator.
func (c *CachingLocator) Locate(prog string, dirs, exts, reject []string) string {
	key := locateKey(prog, dirs, exts, reject)

	c.mu.Lock()
	if found, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return found
	}
	c.misses++
	c.mu.Unlock()

	// Searched without the lock; two racing misses compute the same answer.
	found := c.inner.Locate(prog, dirs, exts, reject)

	c.mu.Lock()
	c.entries[key] = found
	c.mu.Unlock()
	return found
}

// Reset drops every cached result.
func (c *CachingLocator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Len returns the number of cached results.
func (c *CachingLocator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *CachingLocator) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// locateKey hashes the arguments with separators so that ("ab", "c") and
// ("a", "bc") differ.
func locateKey(prog string, lists ...[]string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(prog)
	for _, list := range lists {
		_, _ = h.Write([]byte{0x1e})
		for _, s := range list {
			_, _ = h.WriteString(s)
			_, _ = h.Write([]byte{0x1f})
		}
	}
	return h.Sum64()
}
