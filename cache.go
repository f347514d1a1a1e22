package rebalance

import "sync"

// Cache memoizes portfolio valuations by cache key.
type Cache interface {
	Get(key string) (*PortfolioValuation, bool)
	Put(key string, v *PortfolioValuation)
	Invalidate()
}

// CacheStats counts lookups of a SlotCache.
type CacheStats struct {
	Hits, Misses int
}

// SlotCache retains only the most recently stored valuation.
// Its zero value is an empty cache.
type SlotCache struct {
	mu    sync.Mutex
	key   string
	value *PortfolioValuation
	stats CacheStats
}

// NewSlotCache returns an empty single-entry cache.
func NewSlotCache() *SlotCache { return &SlotCache{} }

func (c *SlotCache) Get(key string) (*PortfolioValuation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil || c.key != key {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return c.value, true
}

func (c *SlotCache) Put(key string, v *PortfolioValuation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key, c.value = key, v
}

func (c *SlotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key, c.value = "", nil
}

// Stats returns the hit and miss counts since creation.
func (c *SlotCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
