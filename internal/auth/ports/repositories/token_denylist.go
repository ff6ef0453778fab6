package repositories

import (
	"context"
	"time"
)

// TokenDenylist хранит идентификаторы отозванных токенов до истечения их срока.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
