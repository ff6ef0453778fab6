package services

import (
	"context"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/domain/services"
)

// TokenService выпускает и проверяет токены сессии.
type TokenService interface {
	Issue(ctx context.Context, identity entities.Identity) (string, *services.JWTClaims, error)

	Verify(ctx context.Context, token string) (*services.JWTClaims, error)
}
