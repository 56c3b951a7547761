package limiter

import "context"

// AttemptLimiter ограничивает частоту попыток входа по ключу
// (обычно email + IP). Allow отвечает, пускать ли очередную попытку.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
