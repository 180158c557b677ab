package database

import (
	"context"
	"database/sql"
)

// DB is the narrow query surface the repositories depend on. The production
// implementation wraps a pgx pool; tests substitute scripted fakes.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Begin(ctx context.Context) (Tx, error)

	// SQLDB exposes the underlying *sql.DB for the migration runner.
	SQLDB() *sql.DB
}

// Tx carries the same query surface as DB inside a transaction. Rollback after
// Commit is a no-op, so callers can always defer it.
type Tx interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
