// Package app реализует сценарии регистрации, входа и проверки сессии.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/domain/services"
	"notekeeper/internal/auth/ports/repositories"
	svc "notekeeper/internal/auth/ports/services"
	"notekeeper/pkg/logger"
	"notekeeper/pkg/validation"
)

const (
	methodRegister     = "Register"
	methodLogin        = "Login"
	methodAuthenticate = "Authenticate"
	methodLogout       = "Logout"

	msgStartRegistration   = "starting user registration"
	msgInvalidInput        = "invalid input"
	msgPasswordTooLong     = "password exceeds bcrypt limit"
	msgEmailExists         = "user with this email already exists"
	msgUserRegistered      = "user registered successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgTokenRejected       = "token rejected"
	msgTokenRevoked        = "revoked token presented"
	msgDenylistUnavailable = "token denylist unavailable, accepting token"
	msgUserLoggedOut       = "user logged out successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrIssueToken        = "failed to issue token"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"
	msgErrRevokingToken     = "failed to revoke token"

	errCtxValidatingInput    = "validating input"
	errCtxCheckingUser       = "checking existing user"
	errCtxEmailRegistered    = "email already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxIssuingToken       = "issuing token"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxVerifyingToken     = "verifying token"
	errCtxRevokingToken      = "revoking token"
)

type registerInput struct {
	FullName string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type loginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

var requiredFieldErrors = map[string]error{
	"FullName": services.ErrFullNameRequired,
	"Email":    services.ErrEmailRequired,
	"Password": services.ErrPasswordRequired,
}

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	denylist    repositories.TokenDenylist
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	validator   *validation.Validator
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
// denylist может быть nil, тогда отзыв токенов не поддерживается.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	denylist repositories.TokenDenylist,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) *AuthUseCaseImpl {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		denylist:    denylist,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		validator:   validation.New(),
	}
}

// Register создает пользователя и выпускает для него токен.
// Поля проверяются в порядке fullName, email, password.
func (a *AuthUseCaseImpl) Register(ctx context.Context, fullName, email, password string) (*services.AuthResult, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if err := a.validator.First(registerInput{FullName: fullName, Email: email, Password: password}, requiredFieldErrors); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}
	if len(password) > services.MaxPasswordBytes {
		log.Debug(ctx, msgPasswordTooLong)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, services.ErrPasswordTooLong)
	}

	existingUser, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailAlreadyExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	createdUser, err := a.userRepo.Create(ctx, &entities.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			log.Debug(ctx, msgEmailExists)
			return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	token, _, err := a.tokenSvc.Issue(ctx, createdUser.Identity())
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err), zap.String("userID", createdUser.ID))
		return nil, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrTokenGenerationFailed, err)
	}

	return &services.AuthResult{User: createdUser, AccessToken: token}, nil
}

// Login проверяет учетные данные и выпускает токен.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	if err := a.validator.First(loginInput{Email: email, Password: password}, requiredFieldErrors); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	token, _, err := a.tokenSvc.Issue(ctx, user.Identity())
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrTokenGenerationFailed, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return &services.AuthResult{User: user, AccessToken: token}, nil
}

// Authenticate проверяет токен и убеждается, что он не отозван.
// Недоступность списка отозванных токенов не блокирует запрос.
func (a *AuthUseCaseImpl) Authenticate(ctx context.Context, token string) (*services.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))

	claims, err := a.tokenSvc.Verify(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxVerifyingToken, services.ErrUnauthorized, err)
	}

	if a.denylist == nil || claims.TokenID == "" {
		return claims, nil
	}

	revoked, err := a.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Warn(ctx, msgDenylistUnavailable, zap.Error(err))
		return claims, nil
	}
	if revoked {
		log.Debug(ctx, msgTokenRevoked, zap.String("userID", claims.Identity.ID))
		return nil, fmt.Errorf("%s: %w: %w", errCtxVerifyingToken, services.ErrUnauthorized, services.ErrTokenRevoked)
	}

	return claims, nil
}

// Logout отзывает токен до истечения его срока.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, claims *services.JWTClaims) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout), zap.String("userID", claims.Identity.ID))

	if a.denylist == nil {
		log.Debug(ctx, msgUserLoggedOut)
		return nil
	}

	if err := a.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		log.Error(ctx, msgErrRevokingToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}
