package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	driver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"simrig-shop/internal/domain"
	"simrig-shop/internal/repository"
)

type UserRepository struct {
	db     *sql.DB
	logger logrus.FieldLogger
}

func NewUserRepository(db *sql.DB, logger logrus.FieldLogger) repository.UserRepository {
	return &UserRepository{db: db, logger: logger}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if err := Migrate(ctx, r.db, r.logger); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	if err := checkRequired(user); err != nil {
		return 0, err
	}

	conn, err := handle(ctx, r.db)
	if err != nil {
		return 0, err
	}

	res, err := conn.ExecContext(ctx, `
INSERT INTO users (first_name, last_name, username, email, password, city, postal_code)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.FirstName,
		user.LastName,
		user.Username,
		user.Email,
		user.Password,
		user.City,
		user.PostalCode,
	)
	if err != nil {
		return 0, classifyInsertError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) FindByCredentials(ctx context.Context, username, passwordDigest string) (*domain.User, error) {
	conn, err := handle(ctx, r.db)
	if err != nil {
		return nil, err
	}

	row := conn.QueryRowContext(ctx, `
SELECT id, first_name, last_name, username, email, password, COALESCE(city, ''), COALESCE(postal_code, '')
FROM users
WHERE username = ? AND password = ?`,
		username,
		passwordDigest,
	)
	return scanUser(row)
}

func checkRequired(user *domain.User) error {
	required := []struct {
		column string
		value  string
	}{
		{"first_name", user.FirstName},
		{"last_name", user.LastName},
		{"username", user.Username},
		{"email", user.Email},
		{"password", user.Password},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%w: users.%s is required", repository.ErrSchemaViolation, field.column)
		}
	}
	return nil
}

// classifyInsertError maps sqlite constraint failures onto repository errors.
func classifyInsertError(err error) error {
	var sqliteErr *driver.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return &repository.DuplicateKeyError{Field: uniqueColumn(err.Error()), Err: err}
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return fmt.Errorf("%w: %v", repository.ErrSchemaViolation, err)
		}
	}

	// without extended result codes only the message tells constraints apart
	if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
		return &repository.DuplicateKeyError{Field: uniqueColumn(err.Error()), Err: err}
	}
	return fmt.Errorf("insert user: %w", err)
}

// uniqueColumn extracts the column from "UNIQUE constraint failed: users.<column>".
func uniqueColumn(msg string) string {
	for _, column := range []string{"username", "email"} {
		if strings.Contains(msg, "users."+column) {
			return column
		}
	}
	return ""
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.City,
		&user.PostalCode,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
