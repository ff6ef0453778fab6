package config

import (
	"fmt"
	"time"
)

// DefaultTokenTTL - срок жизни токена сессии по умолчанию (36000 минут).
const DefaultTokenTTL = 36000 * time.Minute

// JWTConfig содержит настройки для JWT токенов и хэширования паролей.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"NOTEKEEPER_JWT_SECRET_KEY,ACCESS_TOKEN_SECRET" env-default:""`
	TokenTTL   string `yaml:"token_ttl" env:"NOTEKEEPER_JWT_TOKEN_TTL" env-default:"36000m"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"NOTEKEEPER_JWT_BCRYPT_COST" env-default:"10"`
}

// ParseTokenTTL разбирает срок жизни токена и возвращает ошибку для некорректных значений.
func (c *JWTConfig) ParseTokenTTL() (time.Duration, error) {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidTokenTTL, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTokenTTL, c.TokenTTL)
	}
	return duration, nil
}

// GetTokenTTL возвращает срок жизни токена, по умолчанию 36000 минут.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := c.ParseTokenTTL()
	if err != nil {
		return DefaultTokenTTL
	}
	return duration
}
