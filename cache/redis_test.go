package cache

import (
	"context"
	"testing"
	"time"
)

// openTestConnection skips the test when no Redis server is reachable, so the
// tiered cache tests only run where an L2 exists.
func openTestConnection(t *testing.T) *Connection {
	t.Helper()
	conn, err := OpenConnection(DefaultOptions())
	if err != nil {
		t.Skipf("redis connection failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := conn.Client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	return conn
}

func TestTieredCache_WriteThroughAndPromotion(t *testing.T) {
	conn := openTestConnection(t)
	ctx := context.Background()

	l1 := NewInMemoryCacheWithCapacity(10, 100)
	tc := NewTieredCache(l1, conn)

	key := "llist_tiered_test_key"
	defer tc.Delete(ctx, []string{key})

	if err := tc.Set(ctx, key, "v1", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// L1 hit.
	found, v, err := tc.Get(ctx, key)
	if err != nil || !found || v != "v1" {
		t.Fatalf("Get returned (%v, %q, %v), expected L1 hit with v1", found, v, err)
	}

	// Drop L1 so the read falls back to Redis and promotes.
	if err := l1.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	found, v, err = tc.Get(ctx, key)
	if err != nil || !found || v != "v1" {
		t.Fatalf("Get returned (%v, %q, %v), expected L2 fallback with v1", found, v, err)
	}
	if l1.Count() != 1 {
		t.Errorf("L2 hit was not promoted back into L1")
	}

	if _, err := tc.Delete(ctx, []string{key}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	found, _, err = tc.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if found {
		t.Errorf("Get after delete returned found")
	}
}
