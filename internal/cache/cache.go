// Package cache provides Redis-backed caching of per-source search results,
// so repeated searches within the TTL don't re-hit the job boards.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rloyola/panoptes/internal/model"
)

// Cache stores normalized postings per (source, term, location).
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at the given URL and returns a Cache.
// URL format: redis://localhost:6379
func New(redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// Get retrieves cached postings for the given source/term/location
// combination. Returns the postings and true if a valid entry exists.
func (c *Cache) Get(ctx context.Context, source, term, location string) ([]model.Posting, bool) {
	key := buildKey(source, term, location)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var postings []model.Posting
	if err := json.Unmarshal(data, &postings); err != nil {
		return nil, false
	}

	return postings, true
}

// Set stores postings in the cache with the configured TTL.
func (c *Cache) Set(ctx context.Context, source, term, location string, postings []model.Posting) error {
	key := buildKey(source, term, location)

	data, err := json.Marshal(postings)
	if err != nil {
		return fmt.Errorf("cache: marshal error: %w", err)
	}

	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

func buildKey(source, term, location string) string {
	raw := strings.ToLower(source + ":" + term + ":" + location)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("panoptes:%s:%x", strings.ToLower(source), hash[:8])
}
