package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// 23503 = foreign_key_violation
const pgForeignKeyViolation = "23503"

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError checks if error is a foreign key violation.
// On asset_categories this means a missing asset or category on insert, or
// a category that still has assets on delete.
func IsPgForeignKeyError(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}
