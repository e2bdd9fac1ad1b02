package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsageBytesSumsObjectSizes(t *testing.T) {
	store := newFakeStore()
	store.put("alice/photos/a.jpg", 10)
	store.put("alice/photos/b.jpg", 20)
	store.put("alice/docs/c.pdf", 30)
	store.put("bob/other.bin", 999)

	used, err := NewAccountant(store).UsageBytes(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, int64(60), used)
}

func TestUsageBytesEmptyNamespace(t *testing.T) {
	used, err := NewAccountant(newFakeStore()).UsageBytes(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, int64(0), used)
}

func TestUsageBytesNamespaceIsSlashScoped(t *testing.T) {
	store := newFakeStore()
	store.put("abc/file.bin", 100)

	// Caller "ab" must not see caller "abc"'s objects.
	used, err := NewAccountant(store).UsageBytes(context.Background(), "ab")
	require.NoError(t, err)
	require.Equal(t, int64(0), used)
}

func TestUsageBytesListFailurePropagates(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("backend unreachable")

	_, err := NewAccountant(store).UsageBytes(context.Background(), "alice")
	require.ErrorContains(t, err, "backend unreachable")
}
