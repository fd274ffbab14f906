package books

import (
	"sync"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
)

// TickCache holds the most recent market tick per instrument.
type TickCache struct {
	mu    sync.RWMutex
	ticks map[string]marketv1.Tick
}

// NewTickCache creates an empty tick cache.
func NewTickCache() *TickCache {
	return &TickCache{
		ticks: make(map[string]marketv1.Tick),
	}
}

// Put overwrites the cached tick for the instrument.
func (c *TickCache) Put(tick marketv1.Tick) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks[tick.Symbol] = tick
}

// Get returns the cached tick for the instrument, if any.
func (c *TickCache) Get(symbol string) (marketv1.Tick, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tick, ok := c.ticks[symbol]
	return tick, ok
}
