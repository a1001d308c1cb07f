// Package database opens the SQL connection pool shared by the repositories
// and owns the schema migrations for every supported driver.
package database

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// Supported drivers
const (
	Postgres = "postgres"
	SQLite   = "sqlite3"
)

var dbSystems = map[string]string{
	Postgres: "postgresql",
	SQLite:   "sqlite",
}

// Open connects to the database and verifies the connection. Every query
// is recorded as a span on the global tracer provider.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	system, ok := dbSystems[driver]
	if !ok {
		return nil, errors.Newf("unsupported database driver %q", driver)
	}

	db, err := otelsqlx.Open(driver, dsn, otelsql.WithAttributes(attribute.String("db.system", system)))
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", driver)
	}

	// Pool settings
	if driver == SQLite {
		// sqlite serializes writers and an in-memory database lives on a
		// single connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping %s", driver)
	}

	return db, nil
}

// WithTx runs fn inside a transaction, committing when fn returns nil and
// rolling back otherwise.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}
