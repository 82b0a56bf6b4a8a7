package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// IsNoRows reports whether the error is a no-rows result.
func (db *Postgres) IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
