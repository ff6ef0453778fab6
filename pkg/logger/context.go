package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalMu       sync.RWMutex
	globalLogger   *Logger
	fallbackLogger = newFallbackLogger()
)

type loggerKey struct{}

func newFallbackLogger() *Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zapLogger, err := config.Build()
	if err != nil {
		return NewNop()
	}
	return &Logger{l: zapLogger.With(zap.String("logger", "fallback"))}
}

// NewContext возвращает контекст, в котором Log вернет log.
// Используется для logger с полями конкретного запроса.
func NewContext(ctx context.Context, log *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// SetGlobalLogger заменяет глобальный logger. nil возвращает резервный.
func SetGlobalLogger(log *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = log
}

// Log возвращает logger из контекста, иначе глобальный, иначе резервный.
func Log(ctx context.Context) *Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerKey{}).(*Logger); ok && log != nil {
			return log
		}
	}

	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger != nil {
		return globalLogger
	}
	return fallbackLogger
}
