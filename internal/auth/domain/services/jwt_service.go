package services

import (
	"errors"
	"time"

	"notekeeper/internal/auth/domain/entities"
)

// Ошибки JWT токенов.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// JWTConfig содержит настройки для JWT сервиса.
type JWTConfig struct {
	SecretKey []byte
	TokenTTL  time.Duration
}

// JWTClaims - проверенное содержимое токена сессии.
type JWTClaims struct {
	TokenID   string
	Identity  entities.Identity
	IssuedAt  time.Time
	ExpiresAt time.Time
}
