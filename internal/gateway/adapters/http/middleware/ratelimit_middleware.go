package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/gateway/adapters/http/response"
	"notekeeper/internal/gateway/ports/ratelimit"
	"notekeeper/pkg/logger"
)

// Заголовки ограничителя.
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"

	LogRateLimited     = "request rate limited"
	LogRateLimitFailed = "rate limiter unavailable, request allowed"
)

// RateLimitObserver учитывает отклоненные запросы.
type RateLimitObserver interface {
	RateLimitHit(route string)
}

// NewRateLimitMiddleware ограничивает запросы по паре маршрут + IP клиента.
// Ошибка ограничителя пропускает запрос. observer может быть nil.
func NewRateLimitMiddleware(limiter ratelimit.Limiter, observer RateLimitObserver) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := UserContext(ctx)
		route := ctx.Route().Path

		decision, err := limiter.Allow(requestCtx, route+":"+ctx.IP())
		if err != nil {
			logger.Log(requestCtx).Warn(requestCtx, LogRateLimitFailed, zap.Error(err))
			return ctx.Next()
		}

		if decision.Limit > 0 {
			ctx.Set(HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
			ctx.Set(HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining()))
			ctx.Set(HeaderRateLimitReset, strconv.FormatInt(decision.WindowEnd.Unix(), 10))
		}

		if !decision.Allowed {
			logger.Log(requestCtx).Info(requestCtx, LogRateLimited,
				zap.String("route", route),
				zap.String("ip", ctx.IP()))
			if observer != nil {
				observer.RateLimitHit(route)
			}
			retryAfter := int(time.Until(decision.WindowEnd).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return response.Error(ctx, fiber.StatusTooManyRequests, response.MsgTooManyRequests)
		}

		return ctx.Next()
	}
}
