package namespace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores a scope's items as plain string keys named
// <prefix>:<scope>:<key>. When ttl is positive every write refreshes the
// expiry so idle sessions age out.
type Redis struct {
	rdb    *redis.Client
	prefix string
	scope  string
	ttl    time.Duration
}

// NewRedis opens the namespace for one scope.
func NewRedis(rdb *redis.Client, prefix, scope string, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, prefix: prefix, scope: scope, ttl: ttl}
}

// RedisFactory returns a Factory backed by rdb.
func RedisFactory(rdb *redis.Client, prefix string, ttl time.Duration) Factory {
	return func(scope string) Namespace { return NewRedis(rdb, prefix, scope, ttl) }
}

func (r *Redis) key(k string) string { return r.prefix + ":" + r.scope + ":" + k }

func (r *Redis) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: redis get %s: %v", ErrUnavailable, key, err)
	}
	return v, true, nil
}

func (r *Redis) SetItem(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (r *Redis) RemoveItem(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: redis del %s: %v", ErrUnavailable, key, err)
	}
	return nil
}
