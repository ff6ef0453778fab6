// Package memory содержит реализации портов аутентификации в памяти процесса.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/domain/services"
	"notekeeper/internal/auth/ports/repositories"
)

// UserRepository хранит пользователей в map под мьютексом.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entities.User
	byEmail map[string]string
	now     func() time.Time
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает пустое хранилище пользователей.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

// Create добавляет пользователя. Email уникален.
func (r *UserRepository) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, services.ErrEmailAlreadyExists
	}

	created := &entities.User{
		ID:           uuid.NewString(),
		FullName:     user.FullName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedOn:    r.now().UTC(),
	}
	r.byID[created.ID] = created
	r.byEmail[created.Email] = created.ID

	copied := *created
	return &copied, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	copied := *r.byID[id]
	return &copied, nil
}
