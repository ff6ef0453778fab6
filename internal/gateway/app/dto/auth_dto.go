// Package dto содержит объекты передачи данных HTTP слоя.
package dto

import (
	"time"

	"notekeeper/internal/auth/domain/entities"
)

// CreateAccountRequest содержит данные для регистрации пользователя.
type CreateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User - публичное представление пользователя. Хэш пароля не передается.
type User struct {
	ID        string    `json:"_id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"createdOn"`
}

// NewUser преобразует сущность пользователя в DTO.
func NewUser(user *entities.User) User {
	return User{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedOn: user.CreatedOn,
	}
}

// CreateAccountResponse - ответ успешной регистрации.
type CreateAccountResponse struct {
	Error       bool   `json:"error"`
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
	Message     string `json:"message"`
}

// LoginResponse - ответ успешного входа.
type LoginResponse struct {
	Error       bool   `json:"error"`
	Message     string `json:"message"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

// GetUserResponse - ответ на запрос профиля.
type GetUserResponse struct {
	User    User   `json:"user"`
	Message string `json:"message"`
}
