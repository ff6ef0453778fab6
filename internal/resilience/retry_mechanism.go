package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

// RetryConfig содержит настройки для retry механизма.
type RetryConfig struct {
	// MaxAttempts - максимальное количество попыток (включая первую).
	MaxAttempts int
	// InitialBackoff - начальная задержка между попытками.
	InitialBackoff time.Duration
	// MaxBackoff - максимальная задержка между попытками.
	MaxBackoff time.Duration
	// BackoffFactor - множитель для экспоненциального отступа.
	BackoffFactor float64
	// ShouldRetry определяет, нужно ли повторять операцию для данной ошибки.
	ShouldRetry func(error) bool
}

// DefaultRetryConfig возвращает конфигурацию по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
		ShouldRetry:    defaultShouldRetry,
	}
}

// StartupRetryConfig возвращает конфигурацию для подключения к зависимостям при старте,
// когда контейнер базы данных может подниматься дольше сервиса.
func StartupRetryConfig(attempts int) RetryConfig {
	cfg := DefaultRetryConfig()
	if attempts > 0 {
		cfg.MaxAttempts = attempts
	}
	cfg.InitialBackoff = 500 * time.Millisecond
	cfg.MaxBackoff = 5 * time.Second
	return cfg
}

// ErrContextCanceled возвращается, когда контекст был отменен во время ожидания перед повторной попыткой.
var ErrContextCanceled = errors.New("context was canceled during retry")

func defaultShouldRetry(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Константы для логирования.
const (
	LogRetryAttempt     = "retry attempt"
	LogRetrySuccess     = "retry succeeded"
	LogRetryMaxAttempts = "retry max attempts reached"
)

// Retry выполняет функцию с повторными попытками.
type Retry struct {
	name   string
	config RetryConfig
}

// NewRetry создает новый экземпляр retry механизма.
func NewRetry(name string, config RetryConfig) *Retry {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	if config.BackoffFactor < 1 {
		config.BackoffFactor = 1
	}
	if config.ShouldRetry == nil {
		config.ShouldRetry = defaultShouldRetry
	}
	return &Retry{name: name, config: config}
}

// Execute выполняет операцию с автоматическими повторными попытками.
func (r *Retry) Execute(ctx context.Context, operation func() error) error {
	log := logger.Log(ctx).With(zap.String("retry", r.name))

	var err error
	backoff := r.config.InitialBackoff

	for attempt := 1; ; attempt++ {
		err = operation()
		if err == nil {
			if attempt > 1 {
				log.Info(ctx, LogRetrySuccess, zap.Int("attempts", attempt))
			}
			return nil
		}
		if !r.config.ShouldRetry(err) {
			return err
		}
		if attempt >= r.config.MaxAttempts {
			log.Warn(ctx, LogRetryMaxAttempts, zap.Int("attempts", attempt), zap.Error(err))
			return err
		}

		log.Info(ctx, LogRetryAttempt,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		}

		backoff = time.Duration(float64(backoff) * r.config.BackoffFactor)
		if r.config.MaxBackoff > 0 && backoff > r.config.MaxBackoff {
			backoff = r.config.MaxBackoff
		}
	}
}
