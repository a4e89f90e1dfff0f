package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error code for foreign key violations.
const foreignKeyViolationCode = "23503"

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key
// violation, e.g. inserting a note that references a deleted course.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
