package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no row matches a lookup.
var ErrNotFound = errors.New("record not found")

// ConflictError reports a unique constraint violation.
type ConflictError struct {
	Detail string
	Err    error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unique constraint violation: %s", e.Detail)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

const pgUniqueViolation = "23505"

// translateError maps driver errors onto ErrNotFound and *ConflictError.
// Anything else is returned untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		detail := pgErr.Detail
		if detail == "" {
			detail = pgErr.Message
		}
		return &ConflictError{Detail: detail, Err: err}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint &&
		(liteErr.ExtendedCode == sqlite3.ErrConstraintUnique || liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return &ConflictError{Detail: liteErr.Error(), Err: err}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConflictError{Detail: err.Error(), Err: err}
	}
	return err
}
