// Package cache provides an optional Redis-backed read-through cache.
// Cache misses and cache errors both fall back to the database; a
// broken cache never fails a command.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// UserTTL is how long cached user rows stay fresh
const UserTTL = 5 * time.Minute

// Store wraps a Redis client with JSON get/set helpers
type Store struct {
	client *redis.Client
}

// New connects to Redis using a redis:// URL and verifies the connection
func New(ctx context.Context, cacheURL string) (*Store, error) {
	opt, err := redis.ParseURL(cacheURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cache URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping cache: %w", err)
	}

	return &Store{client: client}, nil
}

// Close releases the underlying Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// GetJSON loads a cached value into dest. The second return is false
// on a miss or on any cache error.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		// Stale or corrupt entry; drop it and treat as a miss
		s.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetJSON stores a value as JSON with a TTL. Failures are logged, not returned
func (s *Store) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	b, err := json.Marshal(value)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("Failed to marshal cache value")
		return
	}
	if err := s.client.Set(ctx, key, b, ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache set failed")
	}
}

// Delete removes a key. Failures are logged, not returned
func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache delete failed")
	}
}

// UserKey builds the cache key for a user row
func UserKey(discordID int64) string {
	return fmt.Sprintf("user:%d", discordID)
}
