// Package ratelimit содержит реализации ограничителя частоты запросов.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notekeeper/internal/gateway/ports/ratelimit"
	"notekeeper/internal/resilience"
	"notekeeper/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodAllow = "allow"

	ErrorFailedToIncr   = "failed to increment rate limit counter"
	ErrorFailedToExpire = "failed to set rate limit window"
)

// RedisLimiter реализует ratelimit.Limiter счетчиком INCR с временем жизни окна.
// Время жизни выставляется каждый раз, когда у ключа его нет.
type RedisLimiter struct {
	client  redis.Cmdable
	breaker *resilience.CircuitBreaker
	prefix  string
	limit   int
	window  time.Duration
	now     func() time.Time
}

var _ ratelimit.Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter создает ограничитель поверх Redis. breaker может быть nil.
func NewRedisLimiter(client redis.Cmdable, keyPrefix string, limit int, window time.Duration,
	breaker *resilience.CircuitBreaker,
) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{
		client:  client,
		breaker: breaker,
		prefix:  keyPrefix + "ratelimit:",
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow увеличивает счетчик ключа и возвращает решение для текущего окна.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	if l.limit <= 0 {
		return ratelimit.Decision{Allowed: true}, nil
	}

	log := logger.Log(ctx).With(zap.String("method", LogMethodAllow), zap.String("key", key))
	redisKey := l.prefix + key

	var (
		counter int64
		ttl     time.Duration
	)
	op := func() error {
		var (
			incr *redis.IntCmd
			pttl *redis.DurationCmd
		)
		_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, redisKey)
			pttl = pipe.PTTL(ctx, redisKey)
			return nil
		})
		if err != nil {
			return fmt.Errorf("%s: %w", ErrorFailedToIncr, err)
		}
		counter, ttl = incr.Val(), pttl.Val()

		// Ключ без времени жизни: первый запрос окна или неудавшийся PEXPIRE.
		if ttl < 0 {
			if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
				return fmt.Errorf("%s: %w", ErrorFailedToExpire, err)
			}
			ttl = l.window
		}
		return nil
	}

	var err error
	if l.breaker != nil {
		err = l.breaker.Execute(ctx, op)
	} else {
		err = op()
	}
	if err != nil {
		log.Warn(ctx, ErrorFailedToIncr, zap.Error(err))
		return ratelimit.Decision{}, err
	}

	return ratelimit.Decision{
		Allowed:   int(counter) <= l.limit,
		Count:     int(counter),
		Limit:     l.limit,
		WindowEnd: l.now().Add(ttl),
	}, nil
}
