package memory

import "time"

// NewTokenDenylistWithClock создает список с подменным источником времени.
func NewTokenDenylistWithClock(now func() time.Time) *TokenDenylist {
	return newTokenDenylist(now)
}
