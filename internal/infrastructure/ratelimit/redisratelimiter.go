package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "candlepin:ratelimit"

// RedisRateLimiter keeps a sorted set of request timestamps per key and
// window so limits hold across instances.
type RedisRateLimiter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, now: time.Now}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, limits Limits) (bool, error) {
	now := l.now()
	for _, w := range limits.windows() {
		if w.limit <= 0 {
			continue
		}
		allowed, err := l.checkWindow(ctx, key, w, now)
		if err != nil {
			return false, err
		}
		if !allowed {
			return false, nil
		}
	}
	return true, nil
}

func (l *RedisRateLimiter) checkWindow(ctx context.Context, key string, w window, now time.Time) (bool, error) {
	redisKey := l.key(key, w.duration)
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(now.Add(-w.duration).UnixNano(), 10))
	count := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, w.duration+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit pipeline: %w", err)
	}

	return count.Val() < int64(w.limit), nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	iter := l.client.Scan(ctx, 0, fmt.Sprintf("%s:%s:*", keyPrefix, key), 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("delete %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan rate limit keys: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) key(identifier string, d time.Duration) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, identifier, d)
}
