// Package quota implements storage quota accounting and upload-token
// issuance: a tier-to-ceiling policy, usage aggregation over the blob
// store, remaining-quota resolution, token minting, and bulk reclamation
// of a caller's objects.
package quota

import (
	"fmt"

	"github.com/loftdrive/service/internal/profile"
)

// Policy maps subscription tiers to byte ceilings. It is immutable after
// construction and total over the tier enumeration.
type Policy struct {
	ceilings map[profile.Tier]int64
}

// NewPolicy builds a Policy from the given ceiling table. Every tier in
// profile.AllTiers must have an entry; a missing entry is a configuration
// error, caught here rather than at lookup time.
func NewPolicy(ceilings map[profile.Tier]int64) (Policy, error) {
	for _, tier := range profile.AllTiers {
		if _, ok := ceilings[tier]; !ok {
			return Policy{}, fmt.Errorf("no ceiling configured for tier %q", tier)
		}
	}

	table := make(map[profile.Tier]int64, len(ceilings))
	for tier, ceiling := range ceilings {
		table[tier] = ceiling
	}
	return Policy{ceilings: table}, nil
}

// DefaultPolicy returns the reference ceiling table.
func DefaultPolicy() Policy {
	p, err := NewPolicy(map[profile.Tier]int64{
		profile.TierNone:    0,
		profile.TierFree:    100000,
		profile.TierPremium: 500000,
	})
	if err != nil {
		panic(err) // unreachable: the table above covers AllTiers
	}
	return p
}

// CeilingFor returns the byte ceiling for a tier. Tiers outside the
// configured table resolve to the TierNone ceiling.
func (p Policy) CeilingFor(tier profile.Tier) int64 {
	if ceiling, ok := p.ceilings[tier]; ok {
		return ceiling
	}
	return p.ceilings[profile.TierNone]
}
