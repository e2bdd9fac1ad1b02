package profile

import (
	"context"
	"errors"
	"fmt"
)

// Service contains business logic for subscription tiers.
type Service struct {
	repo *Repository
}

// NewService creates a new profile Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// TierOf returns the caller's tier. A caller without a profile row is on
// TierNone; absence is not an error.
func (s *Service) TierOf(ctx context.Context, callerID string) (Tier, error) {
	tier, err := s.repo.GetTier(ctx, callerID)
	if err == nil {
		return tier, nil
	}
	if errors.Is(err, ErrNotFound) {
		return TierNone, nil
	}
	return TierNone, fmt.Errorf("read tier for %q: %w", callerID, err)
}

// SetTier stores the caller's tier, creating the profile row if needed.
func (s *Service) SetTier(ctx context.Context, callerID string, tier Tier) error {
	if err := s.repo.UpsertTier(ctx, callerID, tier); err != nil {
		return fmt.Errorf("set tier for %q: %w", callerID, err)
	}
	return nil
}
