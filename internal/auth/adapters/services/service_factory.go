// Package services содержит реализации сервисов паролей (bcrypt) и токенов (JWT).
package services

import (
	"time"

	"notekeeper/internal/auth/ports/services"
)

// ServiceFactory создает все необходимые сервисы для аутентификации.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory создает фабрику сервисов.
func NewServiceFactory(jwtSecretKey string, tokenTTL time.Duration, bcryptCost int, opts ...JWTOption) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(jwtSecretKey, tokenTTL, opts...),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
