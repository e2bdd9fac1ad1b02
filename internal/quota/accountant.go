package quota

import (
	"context"
	"fmt"

	"github.com/loftdrive/service/internal/storage"
)

// Accountant computes how many bytes a caller has stored by aggregating
// object sizes under the caller's namespace prefix. The figure is a
// best-effort snapshot recomputed on every call, never cached.
type Accountant struct {
	store storage.Storage
}

// NewAccountant creates an Accountant over the given blob store.
func NewAccountant(store storage.Storage) *Accountant {
	return &Accountant{store: store}
}

// UsageBytes sums the sizes of all objects in the caller's namespace.
// Zero matching objects is a valid usage of 0. A listing failure
// propagates unchanged; no retries are attempted here.
func (a *Accountant) UsageBytes(ctx context.Context, callerID string) (int64, error) {
	objects, err := a.store.List(ctx, NamespacePrefix(callerID))
	if err != nil {
		return 0, fmt.Errorf("aggregate usage for %q: %w", callerID, err)
	}

	var total int64
	for _, obj := range objects {
		total += obj.Size
	}
	return total, nil
}

// NamespacePrefix returns the blob-store key prefix scoping listings to a
// single caller. The trailing slash keeps caller "ab" from matching
// objects owned by caller "abc".
func NamespacePrefix(callerID string) string {
	return callerID + "/"
}
