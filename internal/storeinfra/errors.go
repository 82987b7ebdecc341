package storeinfra

import (
	"errors"

	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/coursekit/go-course-store/store"
)

// Postgres error codes we care about (class 23, integrity violations).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateDriverError maps SQLite and Postgres constraint failures onto the
// store error taxonomy so callers never inspect driver errors or match on
// message substrings. Anything unrecognized is wrapped as a StoreError and
// keeps its chain intact (context.Canceled stays detectable through Unwrap).
func translateDriverError(op, kind string, id any, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return &store.ValidationError{Kind: kind, Err: err}
		case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintTrigger:
			return &store.InUseError{Kind: kind, ID: id}
		}
		if sqliteErr.Code == sqlite3.ErrConstraint {
			return &store.ValidationError{Kind: kind, Err: err}
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return &store.ValidationError{Kind: kind, Err: err}
		case pgForeignKeyViolation:
			return &store.InUseError{Kind: kind, ID: id}
		}
	}

	return &store.StoreError{Op: op, Kind: kind, Err: err}
}
