package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sharedcode/llist"
)

type item struct {
	data       []byte
	expiration time.Time
}

func (it item) expired(now time.Time) bool {
	return !it.expiration.IsZero() && now.After(it.expiration)
}

// InMemoryCache is a concurrency-safe, string-keyed TTL cache with MRU-based
// eviction. Expiration is lazy on read; call StartMaintenance to also sweep
// expired entries in the background.
type InMemoryCache struct {
	mu  sync.Mutex
	mru Cache[string, item]

	stop chan struct{}
	done chan struct{}
}

// NewInMemoryCache creates a cache with default capacity.
func NewInMemoryCache() *InMemoryCache {
	return NewInMemoryCacheWithCapacity(1000, 10000)
}

// NewInMemoryCacheWithCapacity creates a cache that evicts least-recently-used
// entries once it holds maxCapacity items.
func NewInMemoryCacheWithCapacity(minCapacity, maxCapacity int) *InMemoryCache {
	return &InMemoryCache{
		mru: NewCache[string, item](minCapacity, maxCapacity),
	}
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var exp time.Time
	if expiration > 0 {
		exp = time.Now().Add(expiration)
	}

	c.mru.Set([]llist.KeyValuePair[string, item]{
		{
			Key: key,
			Value: item{
				data:       []byte(value),
				expiration: exp,
			},
		},
	})
	return nil
}

func (c *InMemoryCache) Get(ctx context.Context, key string) (bool, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.mru.Get([]string{key})
	if len(items) == 0 {
		return false, "", nil
	}
	it := items[0]
	if it.data == nil {
		return false, "", nil
	}

	if it.expired(time.Now()) {
		c.mru.Delete([]string{key})
		return false, "", nil
	}

	return true, string(it.data), nil
}

// GetEx is Get that also slides the entry's expiration window.
func (c *InMemoryCache) GetEx(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.mru.Get([]string{key})
	if len(items) == 0 {
		return false, "", nil
	}
	it := items[0]
	if it.data == nil {
		return false, "", nil
	}

	if it.expired(time.Now()) {
		c.mru.Delete([]string{key})
		return false, "", nil
	}

	if expiration > 0 {
		it.expiration = time.Now().Add(expiration)
		c.mru.Set([]llist.KeyValuePair[string, item]{
			{Key: key, Value: it},
		})
	}

	return true, string(it.data), nil
}

func (c *InMemoryCache) SetStruct(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var exp time.Time
	if expiration > 0 {
		exp = time.Now().Add(expiration)
	}

	c.mru.Set([]llist.KeyValuePair[string, item]{
		{
			Key: key,
			Value: item{
				data:       data,
				expiration: exp,
			},
		},
	})
	return nil
}

func (c *InMemoryCache) GetStruct(ctx context.Context, key string, target interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.mru.Get([]string{key})
	if len(items) == 0 {
		return false, nil
	}
	it := items[0]
	if it.data == nil {
		return false, nil
	}

	if it.expired(time.Now()) {
		c.mru.Delete([]string{key})
		return false, nil
	}

	if err := json.Unmarshal(it.data, target); err != nil {
		return false, err
	}

	return true, nil
}

func (c *InMemoryCache) Delete(ctx context.Context, keys []string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mru.Delete(keys)
	return true, nil
}

func (c *InMemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mru.Clear()
	return nil
}

// Count returns the number of entries currently cached, expired ones included.
func (c *InMemoryCache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mru.Count()
}

func (c *InMemoryCache) Ping(ctx context.Context) error {
	return nil
}
