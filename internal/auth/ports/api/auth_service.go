// Package api определяет входные порты домена аутентификации.
package api

import (
	"context"

	"notekeeper/internal/auth/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Register(ctx context.Context, fullName, email, password string) (*services.AuthResult, error)

	Login(ctx context.Context, email, password string) (*services.AuthResult, error)

	// Authenticate проверяет токен и список отозванных токенов.
	Authenticate(ctx context.Context, token string) (*services.JWTClaims, error)

	Logout(ctx context.Context, claims *services.JWTClaims) error
}
