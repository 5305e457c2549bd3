package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is the subset of database/sql used by the repositories. *sql.DB and
// *sql.Conn both satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type leaseKey struct{}

// Lease is a request-scoped database connection. The connection is taken from
// the pool on first use and returned by Release. A Lease belongs to a single
// request and is not safe for concurrent use.
type Lease struct {
	db   *sql.DB
	conn *sql.Conn
}

// WithLease attaches a new, not yet acquired, lease for db to ctx.
func WithLease(ctx context.Context, db *sql.DB) (context.Context, *Lease) {
	lease := &Lease{db: db}
	return context.WithValue(ctx, leaseKey{}, lease), lease
}

// Acquired reports whether the lease currently holds a connection.
func (l *Lease) Acquired() bool {
	return l.conn != nil
}

func (l *Lease) acquire(ctx context.Context) (*sql.Conn, error) {
	if l.conn != nil {
		return l.conn, nil
	}
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire db connection: %w", err)
	}
	l.conn = conn
	return conn, nil
}

// Release returns the connection to the pool. It is safe to call on a lease
// that never acquired one, and more than once.
func (l *Lease) Release() error {
	if l.conn == nil {
		return nil
	}
	err := l.conn.Close()
	l.conn = nil
	if err != nil && !errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("release db connection: %w", err)
	}
	return nil
}

// handle returns the leased connection for db when ctx carries one, or db itself.
func handle(ctx context.Context, db *sql.DB) (DBTX, error) {
	lease, ok := ctx.Value(leaseKey{}).(*Lease)
	if !ok || lease.db != db {
		return db, nil
	}
	return lease.acquire(ctx)
}
