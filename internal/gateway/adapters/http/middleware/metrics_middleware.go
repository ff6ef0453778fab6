package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RequestObserver учитывает обработанные запросы.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// NewMetricsMiddleware передает observer метод, шаблон маршрута и статус каждого запроса.
func NewMetricsMiddleware(observer RequestObserver) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}
		observer.ObserveRequest(strings.Clone(ctx.Method()), ctx.Route().Path, status, time.Since(start))

		return err
	}
}
