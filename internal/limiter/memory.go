package limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Окно неактивности, после которого ключ выбрасывается из карты:
// к этому моменту его bucket всё равно полностью восстановился.
const bucketIdleTTL = 3 * time.Minute

// MemoryLimiter — внутрипроцессный ограничитель на token bucket.
// Используется, когда Redis не сконфигурирован; по лимитеру на ключ.
// Простаивающие ключи периодически вычищаются, карта не растёт бесконечно.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time

	limit rate.Limit
	burst int
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter создаёт ограничитель: perMinute попыток в минуту на ключ.
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	return &MemoryLimiter{
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now()

	l.mu.Lock()
	l.sweepLocked(now)
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	return b.lim.Allow(), nil
}

// sweepLocked выбрасывает давно не встречавшиеся ключи. Вызывается под mu,
// не чаще раза в bucketIdleTTL.
func (l *MemoryLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < bucketIdleTTL {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= bucketIdleTTL {
			delete(l.buckets, key)
		}
	}
}
