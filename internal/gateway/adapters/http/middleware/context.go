// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/auth/domain/services"
	"notekeeper/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const localsUserContext = "userContext"

type claimsKey struct{}

// UserContext возвращает контекст запроса, подготовленный промежуточным ПО.
func UserContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(localsUserContext).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}

func setUserContext(ctx fiber.Ctx, userCtx context.Context) {
	ctx.Locals(localsUserContext, userCtx)
}

// WithClaims сохраняет проверенные данные токена в контексте.
func WithClaims(ctx context.Context, claims *services.JWTClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext извлекает данные токена, сохраненные WithClaims.
func ClaimsFromContext(ctx context.Context) (*services.JWTClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*services.JWTClaims)
	return claims, ok && claims != nil
}

// NewRequestContextMiddleware присваивает запросу идентификатор, кладет в контекст
// logger с методом и путем запроса и сохраняет контекст в Locals.
func NewRequestContextMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), strings.Clone(ctx.Get(HeaderRequestID)))
		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(HeaderRequestID, id)
		}
		requestCtx = logger.NewContext(requestCtx, logger.Log(requestCtx).With(
			zap.String("http_method", ctx.Method()),
			zap.String("http_path", strings.Clone(ctx.Path()))))
		setUserContext(ctx, requestCtx)
		return ctx.Next()
	}
}
