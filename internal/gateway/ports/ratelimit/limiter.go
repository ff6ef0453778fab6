// Package ratelimit определяет порт ограничителя частоты запросов.
package ratelimit

import (
	"context"
	"time"
)

// Decision - результат проверки одного запроса.
type Decision struct {
	Allowed   bool
	Count     int
	Limit     int
	WindowEnd time.Time
}

// Remaining возвращает число оставшихся в окне запросов.
func (d Decision) Remaining() int {
	if left := d.Limit - d.Count; left > 0 {
		return left
	}
	return 0
}

// Limiter считает запросы по ключу в фиксированном окне.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
