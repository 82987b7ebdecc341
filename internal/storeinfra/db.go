package storeinfra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// The sqlite3 and pq drivers register themselves via the imports in errors.go.

// OpenSQLite opens a SQLite-backed bun handle. Foreign key enforcement is
// required for the delete backstop, so it is switched on unconditionally.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	sqldb, err := sql.Open("sqlite3", dsn+sep+"_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// OpenPostgres opens a Postgres-backed bun handle via lib/pq.
func OpenPostgres(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// ExistsWhere builds a delete-guard predicate that reports whether any row in
// table references the candidate id through column. Used to declare
// guard rules as (table, column) pairs instead of hand-written SQL.
func ExistsWhere(db bun.IDB, table, column string) func(ctx context.Context, id any) (bool, error) {
	return func(ctx context.Context, id any) (bool, error) {
		return db.NewSelect().
			Table(table).
			Where("? = ?", bun.Ident(column), id).
			Exists(ctx)
	}
}

// CreateTable creates the table for model if it does not exist yet, appending
// any foreign-key clauses. Intended for tests and examples; production schema
// lives in migrations outside this module.
func CreateTable(ctx context.Context, db bun.IDB, model any, foreignKeys ...string) error {
	q := db.NewCreateTable().Model(model).IfNotExists()
	for _, fk := range foreignKeys {
		q = q.ForeignKey(fk)
	}
	_, err := q.Exec(ctx)
	return err
}
