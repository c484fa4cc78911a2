package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row addressed by ID or key does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write
	ErrDuplicate = errors.New("duplicate record")
	// ErrCapabilityUnsupported is returned when the database lacks an optional
	// feature a query relies on, e.g. pg_trgm's similarity()
	ErrCapabilityUnsupported = errors.New("database capability unsupported")
)

const (
	pgUndefinedFunction = "42883"
	pgUniqueViolation   = "23505"
)

// translate maps driver errors onto the package sentinels, keeping the
// original message for logs
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedFunction:
			return fmt.Errorf("%w: %s", ErrCapabilityUnsupported, pgErr.Message)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		}
		return err
	}

	// SQLite reports errors as plain strings
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such function"):
		return fmt.Errorf("%w: %s", ErrCapabilityUnsupported, msg)
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %s", ErrDuplicate, msg)
	}
	return err
}

func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
