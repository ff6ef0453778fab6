// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogSignalReceived  = "shutdown signal received"
	LogContextDone     = "parent context done, shutting down"
	LogHookFailed      = "shutdown hook failed"
	LogShutdownTimeout = "shutdown timeout exceeded"
)

// Hook - функция освобождения ресурсов при завершении.
type Hook func(context.Context) error

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM
// (или до отмены ctx), затем параллельно выполняет все хуки в рамках заданного timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, LogContextDone)
	}

	run(context.WithoutCancel(ctx), timeout, hooks)
}

func run(parent context.Context, timeout time.Duration, hooks []Hook) {
	log := logger.Log(parent)

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	var wgp sync.WaitGroup
	for _, hook := range hooks {
		wgp.Add(1)
		go func(fn Hook) {
			defer wgp.Done()
			if err := fn(ctx); err != nil {
				log.Error(ctx, LogHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn(ctx, LogShutdownTimeout, zap.Duration("timeout", timeout))
	}
}
