// Package redis хранит список отозванных токенов в Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notekeeper/internal/auth/ports/repositories"
	"notekeeper/internal/resilience"
	"notekeeper/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodRevoke    = "Revoke"
	LogMethodIsRevoked = "IsRevoked"

	ErrorFailedToRevoke = "failed to store revoked token in redis"
	ErrorFailedToCheck  = "failed to check revoked token in redis"

	denylistKeyPrefix = "denylist:"
)

// TokenDenylist реализует repositories.TokenDenylist поверх Redis.
// Ключ живет ровно до истечения срока токена.
type TokenDenylist struct {
	client  redis.Cmdable
	prefix  string
	breaker *resilience.CircuitBreaker
	now     func() time.Time
}

var _ repositories.TokenDenylist = (*TokenDenylist)(nil)

// NewTokenDenylist создает список отозванных токенов. Вызовы Redis идут через breaker.
func NewTokenDenylist(client redis.Cmdable, keyPrefix string, breaker *resilience.CircuitBreaker) *TokenDenylist {
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker("redis-denylist", resilience.DefaultCircuitBreakerConfig())
	}
	return &TokenDenylist{
		client:  client,
		prefix:  keyPrefix + denylistKeyPrefix,
		breaker: breaker,
		now:     time.Now,
	}
}

func (d *TokenDenylist) key(tokenID string) string {
	return d.prefix + tokenID
}

// Revoke сохраняет jti с TTL до expiresAt. Уже истекший токен не сохраняется.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRevoke), zap.String("jti", tokenID))

	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		log.Debug(ctx, "token already expired, nothing to revoke")
		return nil
	}

	err := d.breaker.Execute(ctx, func() error {
		return d.client.Set(ctx, d.key(tokenID), "1", ttl).Err()
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRevoke, err)
	}

	return nil
}

// IsRevoked проверяет наличие jti в списке.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodIsRevoked), zap.String("jti", tokenID))

	var exists int64
	err := d.breaker.Execute(ctx, func() error {
		var err error
		exists, err = d.client.Exists(ctx, d.key(tokenID)).Result()
		return err
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToCheck, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToCheck, err)
	}

	return exists > 0, nil
}
