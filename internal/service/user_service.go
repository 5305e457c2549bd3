package service

import (
	"context"
	"errors"
	"fmt"

	"simrig-shop/internal/domain"
	"simrig-shop/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering with a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("email already in use")
)

// Registration carries the fields submitted on the registration form.
type Registration struct {
	FirstName  string
	LastName   string
	Username   string
	Email      string
	Password   string
	City       string
	PostalCode string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, reg Registration) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Register stores a new user with the digest of the submitted password. A
// collision on a unique column is reported as ErrUsernameTaken or
// ErrEmailTaken; both still match repository.ErrDuplicateKey.
func (s *userService) Register(ctx context.Context, reg Registration) (*domain.User, error) {
	if reg.Password == "" {
		return nil, fmt.Errorf("%w: users.password is required", repository.ErrSchemaViolation)
	}

	user := &domain.User{
		FirstName:  reg.FirstName,
		LastName:   reg.LastName,
		Username:   reg.Username,
		Email:      reg.Email,
		Password:   HashPassword(reg.Password),
		City:       reg.City,
		PostalCode: reg.PostalCode,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		var dupErr *repository.DuplicateKeyError
		if errors.As(err, &dupErr) {
			switch dupErr.Field {
			case "username":
				return nil, fmt.Errorf("%w: %w", ErrUsernameTaken, err)
			case "email":
				return nil, fmt.Errorf("%w: %w", ErrEmailTaken, err)
			}
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByCredentials(ctx, username, HashPassword(password))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.Password = ""
	return &clean
}
