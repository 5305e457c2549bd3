package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simrig-shop/internal/domain"
	"simrig-shop/internal/repository"
)

func newTestRepo(t *testing.T) (*sql.DB, repository.UserRepository) {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "data", "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	repo := NewUserRepository(db, logger)
	require.NoError(t, repo.Init(context.Background()))
	return db, repo
}

func testUser(username, email string) *domain.User {
	return &domain.User{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  username,
		Email:     email,
		Password:  "digest-" + username,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser("alice", "a@x.com")
	user.City = "Riga"
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, id, user.ID)

	found, err := repo.FindByCredentials(ctx, "alice", "digest-alice")
	require.NoError(t, err)
	assert.Equal(t, user, found)

	second, err := repo.Create(ctx, testUser("bob", "b@x.com"))
	require.NoError(t, err)
	assert.Greater(t, second, id)
}

func TestUserRepository_FindByCredentials_NotFound(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testUser("alice", "a@x.com"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		digest   string
	}{
		{"wrong digest", "alice", "digest-bob"},
		{"unknown user", "carol", "digest-alice"},
		{"case sensitive username", "Alice", "digest-alice"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := repo.FindByCredentials(ctx, test.username, test.digest)
			require.ErrorIs(t, err, repository.ErrNotFound)
		})
	}
}

func TestUserRepository_Create_DuplicateKey(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testUser("alice", "a@x.com"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		user  *domain.User
		field string
	}{
		{"same username", testUser("alice", "b@x.com"), "username"},
		{"same email", testUser("bob", "a@x.com"), "email"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := repo.Create(ctx, test.user)
			require.ErrorIs(t, err, repository.ErrDuplicateKey)

			var dupErr *repository.DuplicateKeyError
			require.ErrorAs(t, err, &dupErr)
			assert.Equal(t, test.field, dupErr.Field)
			assert.Zero(t, test.user.ID)
		})
	}
}

func TestUserRepository_Create_SchemaViolation(t *testing.T) {
	_, repo := newTestRepo(t)

	user := testUser("alice", "a@x.com")
	user.Email = ""
	_, err := repo.Create(context.Background(), user)
	require.ErrorIs(t, err, repository.ErrSchemaViolation)
	assert.ErrorContains(t, err, "users.email")
}

func TestUserRepository_InitIsIdempotent(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testUser("alice", "a@x.com"))
	require.NoError(t, err)
	require.NoError(t, repo.Init(ctx))

	_, err = repo.FindByCredentials(ctx, "alice", "digest-alice")
	require.NoError(t, err)
}

func TestExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")

	ok, err := Exists(path)
	require.NoError(t, err)
	assert.False(t, ok)

	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Ping())

	ok, err = Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)
}
