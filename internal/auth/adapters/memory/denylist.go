package memory

import (
	"context"
	"sync"
	"time"

	"notekeeper/internal/auth/ports/repositories"
)

// TokenDenylist хранит отозванные jti до истечения срока токена.
type TokenDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

var _ repositories.TokenDenylist = (*TokenDenylist)(nil)

// NewTokenDenylist создает пустой список отозванных токенов.
func NewTokenDenylist() *TokenDenylist {
	return newTokenDenylist(time.Now)
}

func newTokenDenylist(now func() time.Time) *TokenDenylist {
	return &TokenDenylist{revoked: make(map[string]time.Time), now: now}
}

// Revoke помечает токен отозванным до expiresAt. Истекшие записи удаляются при каждом вызове.
func (d *TokenDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for id, exp := range d.revoked {
		if !now.Before(exp) {
			delete(d.revoked, id)
		}
	}
	if now.Before(expiresAt) {
		d.revoked[tokenID] = expiresAt
	}
	return nil
}

// IsRevoked сообщает, отозван ли токен.
func (d *TokenDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !d.now().Before(exp) {
		delete(d.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

// Len возвращает число активных записей.
func (d *TokenDenylist) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.revoked)
}
