package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter 是限流所需的 redis 子集，*redis.Client 直接满足。
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Limiter 是基于 redis 的固定窗口计数器：窗口内第一次计数时设置 TTL，到期后键自动消失。
type Limiter struct {
	counter Counter
	prefix  string
	limit   int64
	window  time.Duration
}

func New(counter Counter, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{counter: counter, prefix: prefix, limit: int64(limit), window: window}
}

// Decision 是一次计数的结果。
type Decision struct {
	Allowed   bool
	Count     int64
	Remaining int64
	Window    time.Duration
}

// Allow 为 key 计数一次，超过上限时 Allowed 为 false。
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	count, err := IncrWithTTL(ctx, l.counter, l.prefix+":"+key, l.window)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit %s: %w", l.prefix, err)
	}
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= l.limit,
		Count:     count,
		Remaining: remaining,
		Window:    l.window,
	}, nil
}

// IncrWithTTL 自增计数，首次出现时设置过期时间。
func IncrWithTTL(ctx context.Context, client Counter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}
