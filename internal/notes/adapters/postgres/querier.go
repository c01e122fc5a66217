// Package postgres реализует репозитории сервиса заметок поверх pgx.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"notetaker/internal/notes/domain/entities"
)

// SQLSTATE коды, которые разбирают репозитории.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// Querier - общее подмножество pgxpool.Pool и pgx.Tx, которым пользуются репозитории.
type Querier interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

// PgxPoolInterface - пул, способный открывать транзакции.
type PgxPoolInterface interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == codeForeignKeyViolation
}

func isConcurrencyFailure(err error) bool {
	code := pgErrorCode(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}

// resolveUpdate переводит результат UPDATE в UpdateOutcome. Если ни одна строка
// не изменилась, существование записи перепроверяется через exists.
func resolveUpdate(
	ctx context.Context,
	tag pgconn.CommandTag,
	execErr error,
	exists func(ctx context.Context) (bool, error),
) (entities.UpdateOutcome, error) {
	if execErr != nil {
		if isConcurrencyFailure(execErr) {
			return entities.UpdateConflict, nil
		}
		return entities.UpdateConflict, execErr
	}
	if tag.RowsAffected() > 0 {
		return entities.UpdateSucceeded, nil
	}

	ok, err := exists(ctx)
	if err != nil {
		return entities.UpdateConflict, err
	}
	if !ok {
		return entities.UpdateNotFound, nil
	}
	return entities.UpdateConflict, nil
}

func existsQuery(ctx context.Context, q Querier, query string, args ...any) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// nonNilIDs гарантирует, что pgx передаст пустой массив, а не NULL.
func nonNilIDs(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
