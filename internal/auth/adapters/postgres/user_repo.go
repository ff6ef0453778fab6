// Package postgres реализует хранение пользователей в PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/domain/services"
	"notekeeper/internal/auth/ports/repositories"
	"notekeeper/pkg/db/postgres"
	"notekeeper/pkg/logger"
)

const (
	queryFindUserByID = `
        SELECT id::text, full_name, email, password_hash, created_on
        FROM users
        WHERE id = $1
    `
	queryFindUserByEmail = `
        SELECT id::text, full_name, email, password_hash, created_on
        FROM users
        WHERE email = $1
    `
	queryCreateUser = `
        INSERT INTO users (full_name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id::text, full_name, email, password_hash, created_on
    `
)

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool postgres.Querier
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool postgres.Querier) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByID находит пользователя по ID. Идентификатор, не являющийся UUID, не найден.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	if _, err := uuid.Parse(id); err != nil {
		log.Debug(ctx, "malformed user id", zap.String("id", id))
		return nil, entities.ErrUserNotFound
	}

	user, err := scanUser(r.pool.QueryRow(ctx, queryFindUserByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	user, err := scanUser(r.pool.QueryRow(ctx, queryFindUserByEmail, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return user, nil
}

// Create создает нового пользователя. Нарушение UNIQUE(email) дает ErrEmailAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	createdUser, err := scanUser(r.pool.QueryRow(ctx, queryCreateUser,
		user.FullName,
		user.Email,
		user.PasswordHash,
	))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			log.Debug(ctx, "email already registered", zap.String("email", user.Email))
			return nil, services.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return createdUser, nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	if err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedOn,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
