package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

var migrateMu sync.Mutex

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// a single writer keeps sqlite from returning SQLITE_BUSY under concurrent requests.
	// Each request that touches the database leases this connection until its
	// response is written, so DB-using requests run one at a time; revisit the
	// lease in lease.go before raising the limit.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return db, nil
}

// Exists reports whether the database file is already present on disk.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat db file: %w", err)
	}
}

// Migrate applies the embedded schema migrations. Every migration is written
// to be idempotent, so running it against an initialized database is a no-op.
func Migrate(ctx context.Context, db *sql.DB, logger logrus.FieldLogger) error {
	// goose keeps its base FS, dialect and logger in package globals
	migrateMu.Lock()
	defer migrateMu.Unlock()

	if logger != nil {
		goose.SetLogger(logger.WithField("component", "migrations"))
	} else {
		goose.SetLogger(goose.NopLogger())
	}
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
