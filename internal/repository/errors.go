package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23505"
}

// IsNotFound reports whether err means the row does not exist. Repositories
// translate this into a nil result instead of surfacing an error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
