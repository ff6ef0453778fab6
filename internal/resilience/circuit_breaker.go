// Package resilience содержит механизмы обеспечения отказоустойчивости
// при работе с внешними зависимостями (Redis, базы данных).
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

// CircuitState представляет состояние Circuit Breaker.
type CircuitState int

// Состояния Circuit Breaker.
const (
	// StateClosed - нормальное состояние, запросы проходят.
	StateClosed CircuitState = iota
	// StateOpen - состояние отказа, запросы блокируются.
	StateOpen
	// StateHalfOpen - промежуточное состояние, пробные запросы.
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Константы для логирования.
const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitTrip        = "circuit breaker tripped"
	LogCircuitReset       = "circuit breaker reset"
	LogCircuitReject      = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, когда Circuit Breaker находится в открытом состоянии.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig содержит настройки Circuit Breaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold - количество ошибок подряд перед переключением в открытое состояние.
	ErrorThreshold int
	// Timeout - время, после которого открытый breaker пропускает пробный запрос.
	Timeout time.Duration
	// SuccessThreshold - количество успешных пробных запросов для закрытия.
	SuccessThreshold int
}

// DefaultCircuitBreakerConfig возвращает конфигурацию Circuit Breaker по умолчанию.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker реализует паттерн Circuit Breaker.
type CircuitBreaker struct {
	name string
	now  func() time.Time

	mu              sync.Mutex
	state           CircuitState
	config          CircuitBreakerConfig
	failures        int
	successes       int
	lastStateChange time.Time
}

// NewCircuitBreaker создает новый экземпляр Circuit Breaker.
func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	return newCircuitBreaker(name, config, time.Now)
}

func newCircuitBreaker(name string, config CircuitBreakerConfig, now func() time.Time) *CircuitBreaker {
	return &CircuitBreaker{
		name:            name,
		now:             now,
		state:           StateClosed,
		config:          config,
		lastStateChange: now(),
	}
}

// Execute выполняет функцию с защитой Circuit Breaker.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.AllowRequest(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	cb.RecordResult(ctx, err)
	return err
}

// AllowRequest проверяет возможность выполнения запроса.
func (cb *CircuitBreaker) AllowRequest(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastStateChange) > cb.config.Timeout {
			cb.setState(ctx, StateHalfOpen)
			return true
		}
		logger.Log(ctx).Debug(ctx, LogCircuitReject, zap.String("circuit_breaker", cb.name))
		return false
	default:
		return false
	}
}

// RecordResult записывает результат выполнения функции.
func (cb *CircuitBreaker) RecordResult(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.onFailure(ctx)
		return
	}
	cb.onSuccess(ctx)
}

func (cb *CircuitBreaker) onFailure(ctx context.Context) {
	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.ErrorThreshold {
			logger.Log(ctx).Warn(ctx, LogCircuitTrip,
				zap.String("circuit_breaker", cb.name),
				zap.Int("failures", cb.failures))
			cb.setState(ctx, StateOpen)
		}
	case StateHalfOpen:
		cb.setState(ctx, StateOpen)
	}
}

func (cb *CircuitBreaker) onSuccess(ctx context.Context) {
	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			logger.Log(ctx).Info(ctx, LogCircuitReset, zap.String("circuit_breaker", cb.name))
			cb.setState(ctx, StateClosed)
		}
	}
}

// setState вызывается под мьютексом.
func (cb *CircuitBreaker) setState(ctx context.Context, state CircuitState) {
	cb.state = state
	cb.lastStateChange = cb.now()
	cb.failures = 0
	cb.successes = 0
	logger.Log(ctx).Info(ctx, LogCircuitStateChange,
		zap.String("circuit_breaker", cb.name),
		zap.Stringer("new_state", state))
}

// GetState возвращает текущее состояние Circuit Breaker.
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
