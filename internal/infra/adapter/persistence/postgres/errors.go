package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"conduit/internal/domain/entity"
)

const uniqueViolation = "23505"

// wrapErr prefixes err with op. Unique key violations additionally wrap
// entity.ErrConflict so the use case can treat a lost race like a failed check.
func wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w (%s): %w", op, entity.ErrConflict, pgErr.ConstraintName, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
