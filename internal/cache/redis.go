package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "pagecache:"

// Redis is the production PageCache, backed by a shared redis instance so every
// replica serves the same cached pages. Keys are namespaced under "pagecache:"
// and expiry is delegated to redis TTLs.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an already-connected redis client
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get returns the entry for key if redis still holds it
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set stores value under key for ttl
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, keyPrefix+key, value, ttl).Err()
}

// Clear deletes every key in the cache namespace, leaving unrelated keys in the
// same redis database alone.
func (r *Redis) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
