// Package repositories определяет выходные порты хранения домена аутентификации.
package repositories

import (
	"context"

	"notekeeper/internal/auth/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения пользователей.
// Create возвращает services.ErrEmailAlreadyExists при нарушении уникальности email,
// FindByID и FindByEmail возвращают entities.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
