package quota

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/loftdrive/service/internal/storage"
)

// maxConcurrentDeletes bounds the delete fan-out per DeleteAll call.
const maxConcurrentDeletes = 16

// ErrPartialDeletion is returned when at least one object delete failed.
// Objects that did delete stay deleted; re-invoking DeleteAll retries
// only what the next listing still finds.
var ErrPartialDeletion = errors.New("some objects could not be deleted")

// DeleteResult reports the outcome of a bulk deletion, keyed so a caller
// can see exactly which objects survived.
type DeleteResult struct {
	Deleted []string
	Failed  []string
}

// AllSucceeded reports whether every attempted delete went through.
func (r DeleteResult) AllSucceeded() bool {
	return len(r.Failed) == 0
}

// Coordinator reclaims a caller's consumed storage by deleting every
// object under the caller's namespace.
type Coordinator struct {
	store storage.Storage
}

// NewCoordinator creates a Coordinator over the given blob store.
func NewCoordinator(store storage.Storage) *Coordinator {
	return &Coordinator{store: store}
}

// DeleteAll lists the caller's namespace and deletes all matched objects
// concurrently, waiting for every delete to finish. An empty namespace
// succeeds trivially. Successful deletes are never rolled back and failed
// ones are not retried here; on any failure the whole call returns
// ErrPartialDeletion alongside the per-key outcome. Re-invocation is
// idempotent: already-deleted objects do not reappear in the next listing.
func (c *Coordinator) DeleteAll(ctx context.Context, callerID string) (DeleteResult, error) {
	objects, err := c.store.List(ctx, NamespacePrefix(callerID))
	if err != nil {
		return DeleteResult{}, fmt.Errorf("list objects for %q: %w", callerID, err)
	}
	if len(objects) == 0 {
		return DeleteResult{}, nil
	}

	var (
		mu     sync.Mutex
		result DeleteResult
	)

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentDeletes)
	for _, obj := range objects {
		key := obj.Key
		g.Go(func() error {
			err := c.store.Delete(ctx, key)
			mu.Lock()
			if err != nil {
				result.Failed = append(result.Failed, key)
			} else {
				result.Deleted = append(result.Deleted, key)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // goroutines report through result, never through errors

	if !result.AllSucceeded() {
		return result, fmt.Errorf("delete all for %q: %w (%d of %d failed)",
			callerID, ErrPartialDeletion, len(result.Failed), len(objects))
	}
	return result, nil
}
