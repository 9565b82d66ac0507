package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"webguard/src/model"
)

// Cache memoizes per-file analysis results keyed by path and content hash.
// It is created per run and passed in explicitly, so its lifetime and
// invalidation are caller-controlled rather than process-wide state.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]model.Issue
}

// NewCache creates an empty analysis cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]model.Issue)}
}

func cacheKey(path, content string) string {
	sum := sha256.Sum256([]byte(path + "\x00" + content))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) get(path, content string) ([]model.Issue, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	issues, ok := c.entries[cacheKey(path, content)]
	return issues, ok
}

func (c *Cache) put(path, content string, issues []model.Issue) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(path, content)] = issues
}

// Len returns the number of cached file results
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
