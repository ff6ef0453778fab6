// Package services содержит ошибки и value-объекты домена аутентификации.
package services

import (
	"errors"
	"fmt"

	"notekeeper/internal/auth/domain/entities"
)

// ErrValidation - общий предок ошибок валидации входных данных.
var ErrValidation = errors.New("validation error")

// Ошибки валидации регистрации и входа.
var (
	ErrFullNameRequired = fmt.Errorf("%w: full name is required", ErrValidation)
	ErrEmailRequired    = fmt.Errorf("%w: email is required", ErrValidation)
	ErrPasswordRequired = fmt.Errorf("%w: password is required", ErrValidation)
	ErrPasswordTooLong  = fmt.Errorf("%w: password is too long", ErrValidation)
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrTokenRevoked          = errors.New("token has been revoked")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
)

// AuthResult возвращается после успешной регистрации или входа.
type AuthResult struct {
	User        *entities.User
	AccessToken string
}
