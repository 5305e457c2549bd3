package repository

import (
	"context"
	"errors"

	"simrig-shop/internal/domain"
)

var (
	// ErrNotFound is returned when no record matches a lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey is returned when a unique column already holds the value.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrSchemaViolation is returned when a record is missing a required field.
	ErrSchemaViolation = errors.New("schema violation")
)

// DuplicateKeyError names the unique column that rejected an insert.
type DuplicateKeyError struct {
	Field string
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return "duplicate key"
	}
	return "duplicate key on " + e.Field
}

func (e *DuplicateKeyError) Unwrap() error { return e.Err }

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	FindByCredentials(ctx context.Context, username, passwordDigest string) (*domain.User, error)
}
