// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "Loading notekeeper configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"

	// EnvConfigPath - необязательный путь к YAML/.env файлу конфигурации.
	EnvConfigPath = "NOTEKEEPER_CONFIG_PATH"
)

// Ошибки валидации конфигурации.
var (
	ErrEmptySecretKey     = errors.New("jwt secret key must be set in production mode")
	ErrUnknownDriver      = errors.New("unknown storage driver")
	ErrInvalidTokenTTL    = errors.New("token ttl must be a positive duration")
	ErrRedisRequired      = errors.New("redis must be enabled for the redis rate limiter backend")
	ErrInvalidRateLimiter = errors.New("unknown rate limiter backend")
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Storage   StorageConfig   `yaml:"storage"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения
// (и из файла, если задан NOTEKEEPER_CONFIG_PATH).
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	var cfg Config
	var err error
	if path := os.Getenv(EnvConfigPath); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("token_ttl", cfg.JWT.GetTokenTTL()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Bool("metrics_enabled", cfg.Metrics.Enabled),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return &cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver)
	}

	if c.JWT.SecretKey == "" && c.Logging.GetEnvironment() == logger.Production {
		return ErrEmptySecretKey
	}

	if _, err := c.JWT.ParseTokenTTL(); err != nil {
		return err
	}

	if c.RateLimit.Enabled {
		switch c.RateLimit.Backend {
		case RateLimiterMemory:
		case RateLimiterRedis:
			if !c.Redis.Enabled {
				return ErrRedisRequired
			}
		default:
			return fmt.Errorf("%w: %q", ErrInvalidRateLimiter, c.RateLimit.Backend)
		}
	}

	return nil
}
