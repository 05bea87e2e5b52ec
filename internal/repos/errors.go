package repos

import (
  "errors"
  "github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres duplicate-key error.
// GetOrCreate treats it as "the row already exists" and refetches; the
// services layer maps it to a field validation failure on explicit renames.
func IsUniqueViolation(err error) bool {
  var pgErr *pgconn.PgError
  if errors.As(err, &pgErr) {
    return pgErr.Code == pgUniqueViolation
  }
  return false
}
