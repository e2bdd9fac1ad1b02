package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loftdrive/service/internal/profile"
)

func TestDeleteAllEmptyNamespace(t *testing.T) {
	result, err := NewCoordinator(newFakeStore()).DeleteAll(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, result.AllSucceeded())
	require.Empty(t, result.Deleted)
}

func TestDeleteAllRemovesEverything(t *testing.T) {
	store := newFakeStore()
	store.put("alice/a.bin", 10)
	store.put("alice/b.bin", 20)
	store.put("alice/c.bin", 30)
	tiers := newFakeTiers()
	tiers.tiers["alice"] = profile.TierFree

	result, err := NewCoordinator(store).DeleteAll(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, result.AllSucceeded())
	require.Len(t, result.Deleted, 3)

	objects, err := store.List(context.Background(), NamespacePrefix("alice"))
	require.NoError(t, err)
	require.Empty(t, objects)

	// With the namespace reclaimed, the full ceiling is available again.
	left, err := newTestResolver(store, tiers).StorageLeft(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, int64(100000), left)
}

func TestDeleteAllLeavesOtherNamespacesAlone(t *testing.T) {
	store := newFakeStore()
	store.put("alice/a.bin", 10)
	store.put("bob/b.bin", 20)

	_, err := NewCoordinator(store).DeleteAll(context.Background(), "alice")
	require.NoError(t, err)

	objects, err := store.List(context.Background(), NamespacePrefix("bob"))
	require.NoError(t, err)
	require.Len(t, objects, 1)
}

func TestDeleteAllPartialFailureThenRetry(t *testing.T) {
	store := newFakeStore()
	store.put("alice/a.bin", 10)
	store.put("alice/b.bin", 20)
	store.put("alice/c.bin", 30)
	store.failDeleteOnce("alice/b.bin")

	coordinator := NewCoordinator(store)

	result, err := coordinator.DeleteAll(context.Background(), "alice")
	require.ErrorIs(t, err, ErrPartialDeletion)
	require.False(t, result.AllSucceeded())
	require.Equal(t, []string{"alice/b.bin"}, result.Failed)
	require.Len(t, result.Deleted, 2)

	// Successful deletes are not rolled back: only the failed object remains.
	objects, err := store.List(context.Background(), NamespacePrefix("alice"))
	require.NoError(t, err)
	require.Len(t, objects, 1)
	require.Equal(t, "alice/b.bin", objects[0].Key)

	// Retrying converges: the next listing finds only the leftover.
	result, err = coordinator.DeleteAll(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"alice/b.bin"}, result.Deleted)

	// Idempotent on an already-empty namespace.
	result, err = coordinator.DeleteAll(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, result.AllSucceeded())
	require.Empty(t, result.Deleted)
}

func TestDeleteAllListFailure(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("backend unreachable")

	_, err := NewCoordinator(store).DeleteAll(context.Background(), "alice")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrPartialDeletion)
}
