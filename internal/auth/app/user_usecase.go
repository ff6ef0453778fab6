package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/domain/services"
	"notekeeper/internal/auth/ports/repositories"
	"notekeeper/pkg/logger"
)

const (
	methodGetUserProfile = "GetUserProfile"

	msgRequestingProfile   = "requesting user profile"
	msgEmptyUserIDProvided = "empty user ID provided"
	msgStaleIdentity       = "token refers to a missing user"
	msgProfileRetrieved    = "user profile successfully retrieved"

	msgErrFindingUserByID = "failed to find user by ID"

	errCtxValidatingUserID = "validating user ID"
	errCtxFetchingProfile  = "fetching user profile"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает новый экземпляр сервиса пользователя.
func NewUserUseCase(userRepo repositories.UserRepository) *UserUseCaseImpl {
	return &UserUseCaseImpl{
		userRepo: userRepo,
	}
}

// GetUserProfile перечитывает пользователя по ID из токена.
// Отсутствующий пользователь означает устаревшую сессию.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUserProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingUserID, services.ErrUnauthorized, entities.ErrEmptyUserID)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgStaleIdentity)
			return nil, fmt.Errorf("%s: %w: %w", errCtxFetchingProfile, services.ErrUnauthorized, err)
		}
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	log.Debug(ctx, msgProfileRetrieved)
	return user, nil
}
