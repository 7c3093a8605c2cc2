package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis configurable options.
type Options struct {
	// Redis server(cluster) address.
	Address string
	// Password required when connecting to the Redis server.
	Password string
	// DB to connect to.
	DB int
	// TLS config.
	TLSConfig *tls.Config
}

// Connection contains Redis client connection object and the Options used to connect.
type Connection struct {
	Client  *redis.Client
	Options Options
}

// DefaultOptions.
func DefaultOptions() Options {
	return Options{
		Address:  "localhost:6379",
		Password: "", // no password set
		DB:       0,  // use default DB
	}
}

var connection *Connection
var mux sync.Mutex

// IsConnectionInstantiated returns true if connection instance is valid.
func IsConnectionInstantiated() bool {
	return connection != nil
}

// OpenConnection creates a singleton connection and returns it for every call.
func OpenConnection(options Options) (*Connection, error) {
	if connection != nil {
		return connection, nil
	}
	mux.Lock()
	defer mux.Unlock()

	if connection != nil {
		return connection, nil
	}

	client := redis.NewClient(&redis.Options{
		TLSConfig: options.TLSConfig,
		Addr:      options.Address,
		Password:  options.Password,
		DB:        options.DB})

	connection = &Connection{
		Client:  client,
		Options: options,
	}
	return connection, nil
}

// CloseConnection closes the singleton connection if open.
func CloseConnection() error {
	if connection == nil {
		return nil
	}
	mux.Lock()
	defer mux.Unlock()
	if connection == nil {
		return nil
	}
	var err error
	if connection.Client != nil {
		err = connection.Client.Close()
		connection.Client = nil
	}
	connection = nil
	return err
}

// TieredCache layers the in-memory MRU cache (L1) over Redis (L2). Writes go
// through to both tiers; reads that miss L1 fall back to Redis and promote
// the hit back into memory. L1 capacity eviction is therefore not data loss,
// only a demotion to the slower tier.
type TieredCache struct {
	l1   *InMemoryCache
	conn *Connection
}

// NewTieredCache creates a tiered cache over an existing Redis connection.
func NewTieredCache(l1 *InMemoryCache, conn *Connection) *TieredCache {
	return &TieredCache{
		l1:   l1,
		conn: conn,
	}
}

func (t *TieredCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if err := t.conn.Client.Set(ctx, key, value, expiration).Err(); err != nil {
		return err
	}
	return t.l1.Set(ctx, key, value, expiration)
}

func (t *TieredCache) Get(ctx context.Context, key string) (bool, string, error) {
	if found, v, err := t.l1.Get(ctx, key); err != nil || found {
		return found, v, err
	}
	v, err := t.conn.Client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, "", nil
		}
		return false, "", err
	}
	// Promote back into L1, carrying over the remaining Redis TTL.
	ttl, err := t.conn.Client.TTL(ctx, key).Result()
	if err != nil {
		ttl = 0
	}
	if err := t.l1.Set(ctx, key, v, ttl); err != nil {
		return false, "", err
	}
	return true, v, nil
}

func (t *TieredCache) Delete(ctx context.Context, keys []string) (bool, error) {
	if err := t.conn.Client.Del(ctx, keys...).Err(); err != nil {
		return false, err
	}
	return t.l1.Delete(ctx, keys)
}

// Ping tests connectivity of the Redis tier.
func (t *TieredCache) Ping(ctx context.Context) error {
	return t.conn.Client.Ping(ctx).Err()
}
