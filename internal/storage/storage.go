// Package storage выбирает и подключает хранилище пользователей и заметок
// согласно настройке storage.driver.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	authmemory "notekeeper/internal/auth/adapters/memory"
	authmongo "notekeeper/internal/auth/adapters/mongo"
	authpostgres "notekeeper/internal/auth/adapters/postgres"
	authrepos "notekeeper/internal/auth/ports/repositories"
	"notekeeper/internal/config"
	notesmemory "notekeeper/internal/notes/adapters/memory"
	notesmongo "notekeeper/internal/notes/adapters/mongo"
	notespostgres "notekeeper/internal/notes/adapters/postgres"
	notesrepos "notekeeper/internal/notes/ports/repositories"
	"notekeeper/internal/resilience"
	"notekeeper/pkg/db/mongo"
	"notekeeper/pkg/db/postgres"
	"notekeeper/pkg/logger"
)

// Сообщения logger.
const (
	LogOpening       = "opening storage"
	LogOpened        = "storage opened"
	LogMemoryStorage = "using in-memory storage, data will be lost on restart"
)

// ErrUnknownDriver возвращается для неподдерживаемого драйвера.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Storage объединяет репозитории выбранного драйвера.
type Storage struct {
	Users authrepos.UserRepository
	Notes notesrepos.NoteRepository

	close func(context.Context) error
}

// Close освобождает соединения хранилища.
func (s *Storage) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open подключает хранилище. Подключение к внешней БД повторяется
// storage.connect_attempts раз с экспоненциальной задержкой.
func Open(ctx context.Context, cfg *config.Config) (*Storage, error) {
	log := logger.Log(ctx).With(zap.String("driver", cfg.Storage.Driver))
	log.Info(ctx, LogOpening)

	var (
		st  *Storage
		err error
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn(ctx, LogMemoryStorage)
		st = &Storage{
			Users: authmemory.NewUserRepository(),
			Notes: notesmemory.NewNoteRepository(),
		}
	case config.DriverPostgres:
		st, err = openPostgres(ctx, cfg)
	case config.DriverMongo:
		st, err = openMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.Info(ctx, LogOpened)
	return st, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var db *postgres.Database
	err := resilience.NewRetry("postgres", resilience.StartupRetryConfig(cfg.Storage.ConnectAttempts)).
		Execute(ctx, func() error {
			var connErr error
			db, connErr = postgres.New(ctx, postgres.Options{
				DSN:     cfg.Postgres.GetDSN(),
				MinConn: cfg.Postgres.MinConn,
				MaxConn: cfg.Postgres.MaxConn,
			})
			return connErr
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := postgres.Migrate(ctx, cfg.Postgres.GetConnectionURL(), cfg.Postgres.MigrationsDir); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &Storage{
		Users: authpostgres.NewUserRepository(db.Pool()),
		Notes: notespostgres.NewNoteRepository(db.Pool()),
		close: db.Close,
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var db *mongo.Database
	err := resilience.NewRetry("mongo", resilience.StartupRetryConfig(cfg.Storage.ConnectAttempts)).
		Execute(ctx, func() error {
			var connErr error
			db, connErr = mongo.New(ctx, mongo.Options{
				URI:            cfg.Mongo.URI,
				Database:       cfg.Mongo.Database,
				ConnectTimeout: cfg.Mongo.ConnectTimeout,
				MaxPoolSize:    cfg.Mongo.MaxPoolSize,
			})
			return connErr
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	users := authmongo.NewUserRepository(db.DB())
	notes := notesmongo.NewNoteRepository(db.DB())

	if err := users.EnsureIndexes(ctx); err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	if err := notes.EnsureIndexes(ctx); err != nil {
		_ = db.Close(ctx)
		return nil, err
	}

	return &Storage{
		Users: users,
		Notes: notes,
		close: db.Close,
	}, nil
}
