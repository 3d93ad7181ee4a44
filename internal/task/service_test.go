// ABOUTME: Tests for task service status coercion and owner scoping
// ABOUTME: Runs against a real SQLite store in a temp directory

package task

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/store"
)

func newTestService(t *testing.T) (*Service, string, string) {
	t.Helper()

	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	alice := &store.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(ctx, alice))
	bob := &store.User{Username: "bob", PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(ctx, bob))

	return NewService(s), alice.ID, bob.ID
}

func TestCreate_StatusCoercion(t *testing.T) {
	svc, alice, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		status string
		want   store.TaskStatus
	}{
		{name: "empty defaults to pending", status: "", want: store.StatusPending},
		{name: "unrecognized defaults to pending", status: "bogus", want: store.StatusPending},
		{name: "exact match", status: "IN_PROGRESS", want: store.StatusInProgress},
		{name: "case insensitive", status: "completed", want: store.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := svc.Create(ctx, alice, Fields{Title: "t", Status: tt.status})
			require.NoError(t, err)
			assert.Equal(t, tt.want, created.Status)
		})
	}
}

func TestUpdate_InvalidStatusKeepsPrior(t *testing.T) {
	svc, alice, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, Fields{Title: "t", Status: "IN_PROGRESS"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice, created.ID, Fields{Title: "t2", Status: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, "t2", updated.Title)
	assert.Equal(t, store.StatusInProgress, updated.Status)

	updated, err = svc.Update(ctx, alice, created.ID, Fields{Title: "t3", Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, store.StatusCompleted, updated.Status)
}

func TestUpdate_OverwritesTitleAndDescription(t *testing.T) {
	svc, alice, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, Fields{Title: "old", Description: "old desc"})
	require.NoError(t, err)

	// An empty description in the update clears the stored one
	updated, err := svc.Update(ctx, alice, created.ID, Fields{Title: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "", updated.Description)
}

func TestOperations_OwnerScoped(t *testing.T) {
	svc, alice, bob := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, Fields{Title: "alice's"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Update(ctx, bob, created.ID, Fields{Title: "hijacked"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	deleted, err := svc.Delete(ctx, bob, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// Still intact for the owner
	got, err := svc.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice's", got.Title)

	deleted, err = svc.Delete(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}
