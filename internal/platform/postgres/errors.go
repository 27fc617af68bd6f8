package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes relevant to the purchase workflow.
const (
	uniqueViolationCode = "23505"
	checkViolationCode  = "23514"
)

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// isCheckViolation checks if the given error is a PostgreSQL check
// constraint violation. The customers and products tables carry CHECK
// constraints mirroring the domain invariants (balance >= 0, count >= 0),
// so this is the database refusing a mutation the domain layer should have
// rejected already.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolationCode
}
