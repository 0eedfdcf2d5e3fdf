package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKV keeps session records in redis under <prefix>:<origin>:<key>.
type RedisKV struct {
	client *redis.Client
	prefix string
	origin string
}

// NewRedisKV returns a redis-backed KV. Records never expire; token validity is the
// backend's call.
func NewRedisKV(client *redis.Client, prefix, origin string) *RedisKV {
	if prefix == "" {
		prefix = "fleet-console"
	}
	return &RedisKV{client: client, prefix: prefix, origin: origin}
}

func (r *RedisKV) key(key string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, r.origin, key)
}

// Get implements KV.
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

// Set implements KV.
func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// Delete implements KV.
func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}
