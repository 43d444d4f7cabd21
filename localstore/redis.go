package localstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps the persisted client state in Redis, for setups where
// drafts and filters should follow the user across machines. A zero TTL
// means entries never expire.
type RedisBackend struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisBackend creates a backend over the given client. The prefix
// namespaces keys per user or installation.
func NewRedisBackend(rc *redis.Client, prefix string, ttl time.Duration) *RedisBackend {
	if rc == nil {
		panic("localstore.NewRedisBackend: redis client is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &RedisBackend{rc: rc, prefix: prefix, ttl: ttl}
}

func (r *RedisBackend) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *RedisBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.rc.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (r *RedisBackend) Save(ctx context.Context, key string, data []byte) error {
	return r.rc.Set(ctx, r.key(key), data, r.ttl).Err()
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	return r.rc.Del(ctx, r.key(key)).Err()
}
