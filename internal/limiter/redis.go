package limiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter — счётчики попыток в Redis: INCR + EXPIRE на окно.
// Переживает рестарт сервера и работает при нескольких инстансах.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

// NewRedisLimiter создаёт ограничитель: limit попыток на окно window.
func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: int64(limit), window: window, prefix: "login_attempts:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + key
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		// первое попадание открывает окно
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, err
		}
	}
	return n <= l.limit, nil
}
