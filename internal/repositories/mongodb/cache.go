package mongodb

import (
	"context"
	"time"
)

// CacheService is the slice of pkg/cache.RedisCache the repositories use.
// A nil CacheService disables caching; correctness never depends on it.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
