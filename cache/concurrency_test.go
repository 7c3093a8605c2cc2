package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestInMemoryCache_Concurrency(t *testing.T) {
	c := NewInMemoryCacheWithCapacity(100, 1000)
	ctx := context.Background()

	var wg sync.WaitGroup
	threadCount := 10
	iterations := 200

	for i := 0; i < threadCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				key := fmt.Sprintf("worker-%d-key-%d", id, j%20)
				if err := c.Set(ctx, key, fmt.Sprintf("v%d", j), time.Minute); err != nil {
					t.Errorf("Set error: %v", err)
					return
				}
				found, _, err := c.Get(ctx, key)
				if err != nil {
					t.Errorf("Get error: %v", err)
					return
				}
				if !found {
					t.Errorf("key %s not found right after Set", key)
					return
				}
				if j%10 == 0 {
					if _, err := c.Delete(ctx, []string{key}); err != nil {
						t.Errorf("Delete error: %v", err)
						return
					}
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestInMemoryCache_ConcurrentEviction(t *testing.T) {
	// Small capacity so writers constantly force evictions.
	c := NewInMemoryCacheWithCapacity(4, 16)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 300; j++ {
				key := fmt.Sprintf("w%d-%d", id, j)
				c.Set(ctx, key, "v", time.Minute)
				c.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	if got := c.Count(); got >= 16 {
		t.Errorf("cache holds %d entries, expected capacity eviction to keep it under 16", got)
	}
}
