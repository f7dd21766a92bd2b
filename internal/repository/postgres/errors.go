package postgres

import (
	"errors"
	"fmt"

	"dataroom/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// isPgDuplicateError checks if error is a unique constraint violation
func isPgDuplicateError(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// isPgNoRowsError checks if error is a "no rows" error
func isPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isPgForeignKeyError checks if error is a foreign key violation
func isPgForeignKeyError(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

// notFoundIfNoRows turns an affected-row count of zero into a domain not-found error
func notFoundIfNoRows(rowsAffected int64, resourceType, id string) error {
	if rowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", resourceType, id, domain.ErrNotFound)
	}
	return nil
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
