package services

import (
	"context"
	"time"
)

// Cache is the read-side cache as the services consume it. *cache.RedisCache
// satisfies it; a nil Cache disables caching. A miss is reported as redis.Nil.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
