package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	authmemory "notekeeper/internal/auth/adapters/memory"
	authredis "notekeeper/internal/auth/adapters/redis"
	authservices "notekeeper/internal/auth/adapters/services"
	authapp "notekeeper/internal/auth/app"
	authrepos "notekeeper/internal/auth/ports/repositories"
	"notekeeper/internal/config"
	httpServer "notekeeper/internal/gateway/adapters/http"
	"notekeeper/internal/gateway/adapters/ratelimit"
	"notekeeper/internal/gateway/metrics"
	ratelimitport "notekeeper/internal/gateway/ports/ratelimit"
	notesapp "notekeeper/internal/notes/app"
	"notekeeper/internal/resilience"
	"notekeeper/internal/storage"
	"notekeeper/pkg/db/redis"
	"notekeeper/pkg/logger"
	"notekeeper/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTEKEEPER_LOGGER_MODE"
	EnvLoggerLevel = "NOTEKEEPER_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrOpenStorage          = "failed to open storage"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrGenerateSecret       = "failed to generate JWT secret"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notekeeper service started"
	LogServiceShutdownDone = "notekeeper service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingStorage      = "closing storage"
	LogInitStorage         = "initializing storage"
	LogInitRedis           = "initializing Redis"
	LogRedisDisabled       = "Redis disabled, token denylist is kept in memory"
	LogEphemeralSecret     = "JWT secret is not set, using an ephemeral secret; tokens will not survive restart"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStorage)
		store, err := storage.Open(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrOpenStorage, zap.Error(err))
			exitCode = 1
			return
		}

		hooks := []shutdown.Hook{
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingStorage)
				return store.Close(ctx)
			},
		}

		var (
			denylist authrepos.TokenDenylist = authmemory.NewTokenDenylist()
			limiter  ratelimitport.Limiter
		)
		if cfg.RateLimit.Enabled && cfg.RateLimit.Backend == config.RateLimiterMemory {
			limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window)
		}

		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitRedis)
			redisClient, err := connectRedis(ctx, cfg)
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				_ = store.Close(ctx)
				exitCode = 1
				return
			}
			hooks = append(hooks, redisClient.Close)

			breaker := resilience.NewCircuitBreaker("redis", resilience.DefaultCircuitBreakerConfig())
			denylist = authredis.NewTokenDenylist(redisClient.RawClient(), cfg.Redis.KeyPrefix, breaker)
			if cfg.RateLimit.Enabled && cfg.RateLimit.Backend == config.RateLimiterRedis {
				limiter = ratelimit.NewRedisLimiter(redisClient.RawClient(), cfg.Redis.KeyPrefix,
					cfg.RateLimit.Limit, cfg.RateLimit.Window, breaker)
			}
		} else {
			log.Warn(ctx, LogRedisDisabled)
		}

		secret := cfg.JWT.SecretKey
		if secret == "" {
			secret, err = ephemeralSecret()
			if err != nil {
				log.Error(ctx, ErrGenerateSecret, zap.Error(err))
				_ = store.Close(ctx)
				exitCode = 1
				return
			}
			log.Warn(ctx, LogEphemeralSecret)
		}

		log.Info(ctx, LogInitServices)
		factory := authservices.NewServiceFactory(secret, cfg.JWT.GetTokenTTL(), cfg.JWT.BCryptCost)

		deps := httpServer.Dependencies{
			Auth:        authapp.NewAuthUseCase(store.Users, denylist, factory.PasswordService(), factory.TokenService()),
			Users:       authapp.NewUserUseCase(store.Users),
			Notes:       notesapp.NewNoteUseCase(store.Notes),
			Limiter:     limiter,
			MetricsPath: cfg.Metrics.Path,
		}
		if cfg.Metrics.Enabled {
			deps.Metrics = metrics.New()
		}

		log.Info(ctx, LogInitHTTPServer)
		app := httpServer.NewApp(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
		})

		httpServer.SetupRouter(app, deps)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		// Остановка HTTP сервера.
		hooks = append(hooks, func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return app.ShutdownWithContext(ctx)
		})

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), hooks...)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	var client *redis.Client
	retry := resilience.NewRetry("redis", resilience.StartupRetryConfig(cfg.Storage.ConnectAttempts))
	err := retry.Execute(ctx, func() error {
		var err error
		client, err = redis.NewClient(ctx, &redis.Config{
			Host:            cfg.Redis.Host,
			Port:            cfg.Redis.Port,
			Password:        cfg.Redis.Password,
			DB:              cfg.Redis.DB,
			PoolSize:        cfg.Redis.PoolSize,
			MinIdle:         cfg.Redis.MinIdle,
			DialTimeout:     cfg.Redis.ConnectTimeout,
			ReadTimeout:     cfg.Redis.ReadTimeout,
			WriteTimeout:    cfg.Redis.WriteTimeout,
			IdleTimeout:     cfg.Redis.IdleTimeout,
			MaxConnLifetime: cfg.Redis.MaxConnLifetime,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ephemeralSecret используется только в режиме development без заданного секрета.
func ephemeralSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
