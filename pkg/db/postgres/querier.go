package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Коды ошибок PostgreSQL, которые обрабатывают репозитории.
const (
	CodeUniqueViolation = "23505"
)

// Querier - подмножество pgxpool.Pool, используемое репозиториями.
// Реализуется *pgxpool.Pool и pgxmock.PgxPoolIface.
type Querier interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

// IsUniqueViolation сообщает, нарушено ли ограничение уникальности.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation
}
