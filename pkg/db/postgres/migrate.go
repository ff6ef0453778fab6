package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
)

// SourceURL превращает путь к каталогу миграций в URL источника golang-migrate.
func SourceURL(migrationsPath string) string {
	if strings.Contains(migrationsPath, "://") {
		return migrationsPath
	}
	return "file://" + migrationsPath
}

// Migrate применяет все миграции из каталога migrationsPath к базе databaseURL.
func Migrate(ctx context.Context, databaseURL, migrationsPath string) error {
	log := logger.Log(ctx)
	source := SourceURL(migrationsPath)

	m, err := migrate.New(source, databaseURL)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", source))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, "failed to close migration instance",
				zap.NamedError("source_error", srcErr), zap.NamedError("database_error", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied, zap.String("path", source))
	return nil
}
