package locks

import "sync"

type cache struct {
	mu      sync.Mutex
	entries map[string]string
}

func snapshot(c cache) map[string]string { // want "snapshot passes lock by value: locks.cache contains sync.Mutex"
	return c.entries
}

func good(c *cache) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries["cc"]
}
