package cache

import (
	log "log/slog"
	"time"
)

// StartMaintenance launches a background janitor that sweeps expired entries
// every interval. Without it, entries that are written once and never read
// again are only reclaimed by capacity eviction. Calling it twice is a no-op;
// Close stops the janitor.
func (c *InMemoryCache) StartMaintenance(interval time.Duration) {
	if interval <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.maintenanceLoop(interval, c.stop, c.done)
}

// Close stops the background janitor, if one is running.
func (c *InMemoryCache) Close() error {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()
	if stop != nil {
		close(stop)
		<-done
	}
	return nil
}

// maintenanceLoop periodically scans and removes expired entries. A ticker
// driven full scan keeps ownership simple; no per-entry timers or goroutines.
func (c *InMemoryCache) maintenanceLoop(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			if n := c.sweep(now); n > 0 {
				log.Debug("cache maintenance sweep", "expired", n)
			}
		}
	}
}

// sweep removes entries whose expiration passed, returning how many were
// removed. Peek is used so the scan does not perturb recency ordering.
func (c *InMemoryCache) sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expired []string
	for _, k := range c.mru.Keys() {
		if it, ok := c.mru.Peek(k); ok && it.expired(now) {
			expired = append(expired, k)
		}
	}
	if len(expired) > 0 {
		c.mru.Delete(expired)
	}
	return len(expired)
}
