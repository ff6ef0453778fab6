package ratelimit

import "time"

// NewMemoryLimiterWithClock создает ограничитель с управляемыми часами.
func NewMemoryLimiterWithClock(limit int, windowSize time.Duration, now func() time.Time) *MemoryLimiter {
	return newMemoryLimiter(limit, windowSize, now)
}
