package repository

import (
	"errors"
	"fmt"
	"strings"

	"linkfeed/internal/common"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// storeError marks a driver failure as ErrStoreUnavailable while keeping the cause.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, common.ErrStoreUnavailable, err)
}

// isUniqueViolation recognizes unique constraint failures from pgx and sqlite.
func isUniqueViolation(err error) bool {
	return constraintFailed(err, pgUniqueViolation, "unique constraint failed")
}

// isForeignKeyViolation recognizes foreign key failures from pgx and sqlite.
func isForeignKeyViolation(err error) bool {
	return constraintFailed(err, pgForeignKeyViolation, "foreign key constraint failed")
}

func constraintFailed(err error, pgCode, sqliteMsg string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCode
	}
	// SQLite: "constraint failed: UNIQUE constraint failed: users.email (2067)"
	return strings.Contains(strings.ToLower(err.Error()), sqliteMsg)
}
