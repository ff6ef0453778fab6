package config

import "time"

// Поддерживаемые реализации ограничителя запросов.
const (
	RateLimiterMemory = "memory"
	RateLimiterRedis  = "redis"
)

// RateLimitConfig настраивает ограничение частоты запросов к /create-account и /login.
type RateLimitConfig struct {
	Enabled bool          `yaml:"enabled" env:"NOTEKEEPER_RATE_LIMIT_ENABLED" env-default:"true"`
	Backend string        `yaml:"backend" env:"NOTEKEEPER_RATE_LIMIT_BACKEND" env-default:"memory"`
	Limit   int           `yaml:"limit" env:"NOTEKEEPER_RATE_LIMIT_LIMIT" env-default:"20"`
	Window  time.Duration `yaml:"window" env:"NOTEKEEPER_RATE_LIMIT_WINDOW" env-default:"1m"`
}
