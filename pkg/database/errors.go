package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrUniqueViolation = errors.New("unique constraint violation")
	ErrBusy            = errors.New("storage busy")
)

// Classify wraps driver errors with ErrUniqueViolation or ErrBusy when they
// represent one of those conditions, and returns other errors unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		switch code & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %v", ErrBusy, err)
		case sqlite3.SQLITE_CONSTRAINT:
			if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
				code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
				strings.Contains(sqliteErr.Error(), "UNIQUE") {
				return fmt.Errorf("%w: %v", ErrUniqueViolation, err)
			}
		}
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%w: %v", ErrUniqueViolation, err)
		case "lock_not_available", "serialization_failure", "deadlock_detected":
			return fmt.Errorf("%w: %v", ErrBusy, err)
		}
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrBusy, err)
	}
	return err
}
