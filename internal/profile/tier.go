// Package profile manages caller subscription tiers and their persistence.
package profile

// Tier is a caller's subscription level. The set of tiers is closed:
// every value read from persistence is parsed through ParseTier, which
// maps anything unrecognized to TierNone.
type Tier string

const (
	TierNone    Tier = "none"
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// AllTiers lists every tier in the closed enumeration. Policy construction
// validates its ceiling table against this list.
var AllTiers = []Tier{TierNone, TierFree, TierPremium}

// ParseTier maps a raw string to a Tier. The second return value reports
// whether the input named a known tier; unknown input yields TierNone.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierNone, TierFree, TierPremium:
		return Tier(s), true
	}
	return TierNone, false
}
