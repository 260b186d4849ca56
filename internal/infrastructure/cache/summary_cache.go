package cache

import (
	"sync"
	"time"

	"github.com/finbook/finance-tracker/internal/domain/entity"
)

// CacheEntry represents a cached summary with expiration
type CacheEntry struct {
	Summary   *entity.Summary
	Timestamp time.Time
}

// SummaryCache provides a thread-safe in-memory cache for summary results.
// Entries are keyed by the filter triple and cleared on every write to the
// transaction store, so cached results never differ from recomputed ones.
type SummaryCache struct {
	cache      map[string]CacheEntry
	expiration time.Duration
	mutex      sync.RWMutex
}

// NewSummaryCache creates a new summary cache
func NewSummaryCache() *SummaryCache {
	return &SummaryCache{
		cache:      make(map[string]CacheEntry),
		expiration: time.Minute,
	}
}

// generateCacheKey creates a cache key from the filter triple
func generateCacheKey(start, end *time.Time, category string) string {
	key := "-"
	if start != nil {
		key = start.Format("2006-01-02")
	}
	key += ":"
	if end != nil {
		key += end.Format("2006-01-02")
	} else {
		key += "-"
	}
	return key + ":" + category
}

// Get retrieves a summary from the cache if available and not expired
func (c *SummaryCache) Get(start, end *time.Time, category string) *entity.Summary {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	key := generateCacheKey(start, end, category)
	entry, exists := c.cache[key]

	if !exists || time.Since(entry.Timestamp) > c.expiration {
		return nil
	}

	return entry.Summary
}

// Put stores a summary in the cache
func (c *SummaryCache) Put(summary *entity.Summary, start, end *time.Time, category string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := generateCacheKey(start, end, category)
	c.cache[key] = CacheEntry{
		Summary:   summary,
		Timestamp: time.Now(),
	}
}

// Clear clears all entries from the cache
func (c *SummaryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[string]CacheEntry)
}

// SetExpiration sets the cache expiration duration
func (c *SummaryCache) SetExpiration(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.expiration = duration
}

// Size returns the number of items in the cache
func (c *SummaryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}
