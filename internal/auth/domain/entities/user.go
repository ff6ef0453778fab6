// Package entities содержит сущности домена аккаунтов.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUserID  = errors.New("user ID cannot be empty")
	ErrUserNotFound = errors.New("user not found")
)

// User представляет зарегистрированного пользователя.
// PasswordHash никогда не покидает слой хранения и use case.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedOn    time.Time
}

// Identity - снимок данных пользователя, встраиваемый в токен сессии.
type Identity struct {
	ID        string
	FullName  string
	Email     string
	CreatedOn time.Time
}

// Identity возвращает снимок пользователя без хэша пароля.
func (u *User) Identity() Identity {
	return Identity{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedOn: u.CreatedOn,
	}
}
