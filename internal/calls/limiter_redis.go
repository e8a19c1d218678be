package calls

import (
	"context"
	"time"

	"collections-center/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const callCapKeyPrefix = "callcap:"

// RedisCapLimiter enforces the per-number concurrent-call cap in Redis.
// The slot TTL matches the credential TTL so a crashed process cannot hold
// a number hostage.
type RedisCapLimiter struct {
	rdb   *redis.Client
	limit int
	ttl   time.Duration
}

func NewRedisCapLimiter(rdb *redis.Client, limit int, ttl time.Duration) *RedisCapLimiter {
	if limit <= 0 {
		limit = 1
	}
	if ttl <= 0 {
		ttl = 4 * time.Hour
	}
	return &RedisCapLimiter{rdb: rdb, limit: limit, ttl: ttl}
}

func (l *RedisCapLimiter) Acquire(ctx context.Context, key string) (bool, error) {
	return utils.AcquireCallCap(ctx, l.rdb, callCapKeyPrefix+key, l.limit, l.ttl)
}

func (l *RedisCapLimiter) Release(ctx context.Context, key string) error {
	return utils.ReleaseCallCap(ctx, l.rdb, callCapKeyPrefix+key)
}
