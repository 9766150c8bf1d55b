package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/oksasatya/notegenius-api/internal/domain/repository"
)

// wrapErr maps driver errors onto repository sentinels and attaches the operation name.
func wrapErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return oops.With("operation", op).Wrap(repository.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return oops.With("operation", op).With("constraint", pgErr.ConstraintName).Wrap(repository.ErrConflict)
	}
	return oops.With("operation", op).Wrap(err)
}

// expectAffected turns a zero-row mutation into ErrNotFound.
func expectAffected(op string, tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return oops.With("operation", op).Wrap(repository.ErrNotFound)
	}
	return nil
}
