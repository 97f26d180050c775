package crossref

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"journal-service/pkg/platform/sentinel"
)

const workKeyPrefix = "crossref:work:"

// RedisCache is a Redis-backed Cache shared by every service instance.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache constructs a Redis-backed work cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, doi string) ([]byte, error) {
	b, err := c.client.Get(ctx, workKeyPrefix+doi).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get crossref work: %w", err)
	}
	return b, nil
}

// Set stores document with ttl. A zero ttl keeps the key without expiry.
func (c *RedisCache) Set(ctx context.Context, doi string, document []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, workKeyPrefix+doi, document, ttl).Err(); err != nil {
		return fmt.Errorf("set crossref work: %w", err)
	}
	return nil
}
