package ratelimit

import (
	"context"
	"sync"
	"time"

	"notekeeper/internal/gateway/ports/ratelimit"
)

// sweepThreshold - размер таблицы, после которого истекшие окна удаляются.
const sweepThreshold = 4096

type window struct {
	count int
	end   time.Time
}

// MemoryLimiter реализует ratelimit.Limiter в памяти процесса.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]window
	limit   int
	window  time.Duration
	now     func() time.Time
}

var _ ratelimit.Limiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter создает ограничитель в памяти.
func NewMemoryLimiter(limit int, windowSize time.Duration) *MemoryLimiter {
	return newMemoryLimiter(limit, windowSize, time.Now)
}

func newMemoryLimiter(limit int, windowSize time.Duration, now func() time.Time) *MemoryLimiter {
	if windowSize <= 0 {
		windowSize = time.Minute
	}
	return &MemoryLimiter{
		entries: make(map[string]window),
		limit:   limit,
		window:  windowSize,
		now:     now,
	}
}

// Allow учитывает запрос в окне ключа.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (ratelimit.Decision, error) {
	if l.limit <= 0 {
		return ratelimit.Decision{Allowed: true}, nil
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) >= sweepThreshold {
		l.sweep(now)
	}

	state, ok := l.entries[key]
	if !ok || !now.Before(state.end) {
		state = window{end: now.Add(l.window)}
	}
	state.count++
	l.entries[key] = state

	return ratelimit.Decision{
		Allowed:   state.count <= l.limit,
		Count:     state.count,
		Limit:     l.limit,
		WindowEnd: state.end,
	}, nil
}

// sweep вызывается под мьютексом.
func (l *MemoryLimiter) sweep(now time.Time) {
	for key, state := range l.entries {
		if !now.Before(state.end) {
			delete(l.entries, key)
		}
	}
}
