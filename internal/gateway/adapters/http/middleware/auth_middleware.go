package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/auth/domain/services"
	"notekeeper/internal/gateway/adapters/http/response"
	"notekeeper/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorTokenRejected      = "token rejected"

	bearerPrefix = "Bearer "
)

// Authenticator проверяет токен сессии.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.JWTClaims, error)
}

// NewAuthMiddleware создает промежуточное ПО, требующее заголовок
// Authorization: Bearer <token>. Проверенные данные токена доступны
// через ClaimsFromContext(UserContext(ctx)).
func NewAuthMiddleware(auth Authenticator) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := UserContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return response.Error(ctx, fiber.StatusUnauthorized, response.MsgUnauthorized)
		}

		token, found := strings.CutPrefix(authHeader, bearerPrefix)
		token = strings.TrimSpace(token)
		if !found || token == "" {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return response.Error(ctx, fiber.StatusUnauthorized, response.MsgUnauthorized)
		}

		claims, err := auth.Authenticate(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorTokenRejected, zap.Error(err))
			return response.Error(ctx, fiber.StatusUnauthorized, response.MsgUnauthorized)
		}

		setUserContext(ctx, WithClaims(requestCtx, claims))

		return ctx.Next()
	}
}
