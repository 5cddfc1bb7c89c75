package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsDuplicateKey reports whether err is a postgres unique violation, used
// to turn a racing double-register into a Conflict instead of a 500.
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
