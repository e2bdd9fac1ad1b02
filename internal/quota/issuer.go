package quota

import (
	"context"
	"fmt"

	"github.com/loftdrive/service/internal/identity"
)

// Claim names embedded in issued upload tokens, shared with the upload
// path that consumes them.
const (
	ClaimStorageLeft = "storageLeftInBytes"
	ClaimPath        = "path"
)

// Issuer mints upload tokens that bind a verified caller identity to the
// caller's remaining quota at issuance time. The embedded figure is
// always computed server-side and fresh; nothing caller-supplied feeds it.
type Issuer struct {
	verifier identity.Verifier
	signer   identity.Signer
	resolver *Resolver
}

// NewIssuer creates an Issuer from its collaborators.
func NewIssuer(verifier identity.Verifier, signer identity.Signer, resolver *Resolver) *Issuer {
	return &Issuer{verifier: verifier, signer: signer, resolver: resolver}
}

// Issue verifies the credential, resolves the caller's remaining quota,
// and mints a signed token carrying {sub, storageLeftInBytes, path}.
// Nothing is mutated: issuance does not reserve quota. Two concurrent
// issuances for the same caller each embed an independent remainder, so
// two tokens can jointly authorize more bytes than the ceiling permits if
// both uploads land before either is accounted for. Known limitation.
func (i *Issuer) Issue(ctx context.Context, credential, path string) (string, error) {
	callerID, err := i.verifier.Verify(credential)
	if err != nil {
		return "", fmt.Errorf("verify credential: %w", err)
	}

	left, err := i.resolver.StorageLeft(ctx, callerID)
	if err != nil {
		return "", fmt.Errorf("issue upload token: %w", err)
	}

	artifact, err := i.signer.Mint(callerID, map[string]interface{}{
		ClaimStorageLeft: left,
		ClaimPath:        path,
	})
	if err != nil {
		return "", fmt.Errorf("mint upload token: %w", err)
	}
	return artifact, nil
}
