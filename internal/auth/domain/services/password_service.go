package services

import (
	"errors"
)

// Ошибки хэширования паролей.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)

// MaxPasswordBytes - предел bcrypt, более длинные пароли отклоняются.
const MaxPasswordBytes = 72
