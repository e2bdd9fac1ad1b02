package quota

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/loftdrive/service/internal/profile"
)

// TierStore is the narrow profile-store surface the quota core consumes.
// *profile.Service satisfies it; tests substitute an in-memory double.
type TierStore interface {
	TierOf(ctx context.Context, callerID string) (profile.Tier, error)
	SetTier(ctx context.Context, callerID string, tier profile.Tier) error
}

// Resolver combines the policy, the profile store, and the accountant to
// produce a caller's remaining quota.
type Resolver struct {
	tiers      TierStore
	policy     Policy
	accountant *Accountant
}

// NewResolver creates a Resolver from its collaborators.
func NewResolver(tiers TierStore, policy Policy, accountant *Accountant) *Resolver {
	return &Resolver{tiers: tiers, policy: policy, accountant: accountant}
}

// StorageLeft returns ceiling(tier) − usage for the caller, evaluated now.
// The result is negative when the caller is over quota; it is never
// clamped. The tier read and the usage aggregation run concurrently and
// both must succeed — any sub-read failure fails the whole call with no
// partial result.
func (r *Resolver) StorageLeft(ctx context.Context, callerID string) (int64, error) {
	var (
		tier profile.Tier
		used int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := r.tiers.TierOf(gctx, callerID)
		if err != nil {
			return err
		}
		tier = t
		return nil
	})
	g.Go(func() error {
		u, err := r.accountant.UsageBytes(gctx, callerID)
		if err != nil {
			return err
		}
		used = u
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("resolve storage left for %q: %w", callerID, err)
	}

	return r.policy.CeilingFor(tier) - used, nil
}
