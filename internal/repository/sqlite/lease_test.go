package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLease_AcquiresLazilyAndReleases(t *testing.T) {
	db, repo := newTestRepo(t)

	ctx, lease := WithLease(context.Background(), db)
	assert.False(t, lease.Acquired())

	_, err := repo.Create(ctx, testUser("alice", "a@x.com"))
	require.NoError(t, err)
	assert.True(t, lease.Acquired())
	assert.Equal(t, 1, db.Stats().InUse)

	_, err = repo.FindByCredentials(ctx, "alice", "digest-alice")
	require.NoError(t, err)
	assert.Equal(t, 1, db.Stats().OpenConnections)

	require.NoError(t, lease.Release())
	assert.False(t, lease.Acquired())
	assert.Equal(t, 0, db.Stats().InUse)

	// released twice is fine
	require.NoError(t, lease.Release())
}

func TestLease_UnusedLeaseReleases(t *testing.T) {
	db, _ := newTestRepo(t)

	_, lease := WithLease(context.Background(), db)
	require.NoError(t, lease.Release())
	assert.Equal(t, 0, db.Stats().InUse)
}

func TestLease_OtherDatabaseUsesPool(t *testing.T) {
	db, repo := newTestRepo(t)
	other, _ := newTestRepo(t)

	ctx, lease := WithLease(context.Background(), other)
	_, err := repo.Create(ctx, testUser("alice", "a@x.com"))
	require.NoError(t, err)
	assert.False(t, lease.Acquired())
	assert.Equal(t, 0, db.Stats().InUse)
}

func TestLease_HeldLeaseBlocksOtherRequests(t *testing.T) {
	db, repo := newTestRepo(t)

	ctx, first := WithLease(context.Background(), db)
	_, err := repo.Create(ctx, testUser("alice", "a@x.com"))
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	waitCtx, second := WithLease(waitCtx, db)
	_, err = repo.FindByCredentials(waitCtx, "alice", "digest-alice")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, second.Acquired())

	require.NoError(t, first.Release())

	ctx, third := WithLease(context.Background(), db)
	_, err = repo.FindByCredentials(ctx, "alice", "digest-alice")
	require.NoError(t, err)
	require.NoError(t, third.Release())
}
