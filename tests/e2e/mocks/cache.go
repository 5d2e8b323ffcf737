package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type InMemoryCache struct{}

func (c *InMemoryCache) Get(ctx context.Context, key string, dest any) error {
	return redis.Nil
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	return nil
}

func (c *InMemoryCache) Close() error {
	return nil
}

// TrackingCache stores entries as JSON and counts calls. Set happens on a
// background goroutine in the handler layer, so access is mutex-guarded.
type TrackingCache struct {
	mu   sync.Mutex
	gets int
	sets int
	data map[string]cacheEntry
}

type cacheEntry struct {
	payload []byte
	expiry  time.Time
}

func NewTrackingCache() *TrackingCache {
	return &TrackingCache{
		data: make(map[string]cacheEntry),
	}
}

func (c *TrackingCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++
	if entry, exists := c.data[key]; exists && time.Now().Before(entry.expiry) {
		return json.Unmarshal(entry.payload, dest)
	}
	return redis.Nil
}

func (c *TrackingCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sets++
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = cacheEntry{payload: payload, expiry: time.Now().Add(exp)}
	return nil
}

func (c *TrackingCache) Close() error {
	return nil
}

func (c *TrackingCache) GetCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets
}

func (c *TrackingCache) SetCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}
