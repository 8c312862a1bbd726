package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds recent snapshots keyed by symbol. Entries are written whole
// and expire on their own; quotes decay naturally so nothing ever needs a
// manual invalidation.
type Cache interface {
	Get(ctx context.Context, symbol string) (*Snapshot, error)
	Set(ctx context.Context, snap Snapshot) error
}

// RedisCache is the process-wide quote cache shared by all aggregation calls.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new Redis-backed cache connection.
func NewRedisCache(addr string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password
		DB:       0,  // default DB
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

func cacheKey(symbol string) string {
	return fmt.Sprintf("quote:%s", symbol)
}

// Get returns the cached snapshot for a symbol, or nil on a miss.
func (c *RedisCache) Get(ctx context.Context, symbol string) (*Snapshot, error) {
	raw, err := c.client.Get(ctx, cacheKey(symbol)).Result()
	if err == redis.Nil {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached quote: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("invalid cached quote: %w", err)
	}
	return &snap, nil
}

// Set stores a snapshot with the cache TTL. The value is replaced wholesale,
// never mutated in place, so concurrent readers cannot see a torn entry.
func (c *RedisCache) Set(ctx context.Context, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode quote: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(snap.Symbol), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache quote: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
