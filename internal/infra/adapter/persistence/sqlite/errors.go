package sqlite

import (
	"errors"
	"fmt"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"conduit/internal/domain/entity"
)

// wrapErr prefixes err with op. Unique and primary key violations
// additionally wrap entity.ErrConflict.
func wrapErr(op string, err error) error {
	var sqliteErr *moderncsqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%s: %w: %w", op, entity.ErrConflict, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
