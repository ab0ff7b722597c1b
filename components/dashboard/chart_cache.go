package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// RenderCache memoizes rendered chart HTML. ChartRenderer keys entries by
// kind, theme, height and series content.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache keeps rendered charts in memory for a fixed TTL. Expired entries
// are dropped lazily on lookup or in bulk by Purge.
type ChartCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]chartEntry
}

type chartEntry struct {
	html    string
	expires time.Time
}

func (e chartEntry) live(at time.Time) bool {
	return !at.After(e.expires)
}

// NewChartCache builds a cache. A non-positive TTL disables caching.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]chartEntry{},
	}
}

func (c *ChartCache) enabled() bool {
	return c != nil && c.ttl > 0
}

// GetOrRender returns the live entry for key, rendering and storing it when
// missing. Render errors are not cached.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if !c.enabled() {
		return render()
	}
	if html, ok := c.lookup(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.entries[key] = chartEntry{html: html, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return html, nil
}

func (c *ChartCache) lookup(key string) (string, bool) {
	at := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if !entry.live(at) {
		delete(c.entries, key)
		return "", false
	}
	return entry.html, true
}

// Purge drops expired entries and reports how many were removed.
func (c *ChartCache) Purge() int {
	if c == nil {
		return 0
	}
	at := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, entry := range c.entries {
		if !entry.live(at) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired or not.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// seriesHash fingerprints a panel's title, kind and data.
func seriesHash(panel ChartPanel) string {
	b, err := json.Marshal(panel)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
