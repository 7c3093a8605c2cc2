// Package cache contains in-process MRU and TTL cache implementations built
// on the concurrent linked list. It offers a generic Cache interface, a
// string-keyed TTL cache with optional background maintenance, and a tiered
// cache that spills to Redis as an L2.
package cache

import "github.com/sharedcode/llist"

// Cache is a generic MRU cache interface used for in-memory caching scenarios.
// Implementations should maintain recency and support bulk operations.
type Cache[TK comparable, TV any] interface {
	// Clear removes all entries from the cache.
	Clear()
	// Set inserts or updates the given key/value pairs.
	Set(items []llist.KeyValuePair[TK, TV])
	// Get looks up the values for the given keys; missing keys yield zero values.
	Get(keys []TK) []TV
	// Peek looks up the value for a key without updating recency.
	Peek(key TK) (TV, bool)
	// Keys returns the currently stored keys, in no particular order.
	Keys() []TK
	// Delete removes the given keys from the cache, if present.
	Delete(keys []TK)
	// Count returns the number of items currently stored in the cache.
	Count() int
	// IsFull reports whether the cache has reached its maximum capacity.
	IsFull() bool
	// Evict removes least-recently-used entries until capacity constraints are satisfied.
	Evict()
}

type cacheEntry[TK comparable, TV any] struct {
	data TV
	// node is the strong handle to this entry's recency-list node; the list
	// itself only holds weak references, so dropping this would orphan the
	// chain.
	node *llist.Node[TK]
}

type cache[TK comparable, TV any] struct {
	lookup map[TK]*cacheEntry[TK, TV]
	mru    *mru[TK, TV]
}

// NewCache creates a new generic cache with MRU-based eviction.
func NewCache[TK comparable, TV any](minCapacity, maxCapacity int) Cache[TK, TV] {
	c := cache[TK, TV]{
		lookup: make(map[TK]*cacheEntry[TK, TV], maxCapacity),
	}
	c.mru = newMru(&c, minCapacity, maxCapacity)
	return &c
}

func (c *cache[TK, TV]) Clear() {
	c.lookup = make(map[TK]*cacheEntry[TK, TV], c.mru.maxCapacity)
	c.mru = newMru(c, c.mru.minCapacity, c.mru.maxCapacity)
}

func (c *cache[TK, TV]) Set(items []llist.KeyValuePair[TK, TV]) {
	for i := range items {
		if v, ok := c.lookup[items[i].Key]; ok {
			v.data = items[i].Value
			c.mru.touch(v.node)
			continue
		}
		n := c.mru.add(items[i].Key)
		c.lookup[items[i].Key] = &cacheEntry[TK, TV]{
			data: items[i].Value,
			node: n,
		}
	}
	c.Evict()
}

func (c *cache[TK, TV]) Get(keys []TK) []TV {
	r := make([]TV, len(keys))
	for i := range keys {
		if v, ok := c.lookup[keys[i]]; ok {
			c.mru.touch(v.node)
			r[i] = v.data
		}
	}
	return r
}

func (c *cache[TK, TV]) Peek(key TK) (TV, bool) {
	if v, ok := c.lookup[key]; ok {
		return v.data, true
	}
	var zero TV
	return zero, false
}

func (c *cache[TK, TV]) Keys() []TK {
	keys := make([]TK, 0, len(c.lookup))
	for k := range c.lookup {
		keys = append(keys, k)
	}
	return keys
}

func (c *cache[TK, TV]) Delete(keys []TK) {
	for i := range keys {
		if v, ok := c.lookup[keys[i]]; ok {
			c.mru.remove(v.node)
			v.node = nil
			delete(c.lookup, keys[i])
		}
	}
}

// Count returns the number of items currently stored in this cache.
func (c *cache[TK, TV]) Count() int {
	return len(c.lookup)
}

func (c *cache[TK, TV]) IsFull() bool {
	return c.mru.isFull()
}

// Evict removes least-recently-used entries until the cache size is within capacity.
func (c *cache[TK, TV]) Evict() {
	c.mru.evict()
}
