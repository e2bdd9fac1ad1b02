package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no profile row exists for a caller.
var ErrNotFound = errors.New("profile not found")

// Repository handles all profile database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetTier fetches the stored tier for a caller.
func (r *Repository) GetTier(ctx context.Context, callerID string) (Tier, error) {
	var raw string
	err := r.db.QueryRow(ctx,
		`SELECT tier FROM profiles WHERE caller_id = $1`,
		callerID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return TierNone, ErrNotFound
	}
	if err != nil {
		return TierNone, fmt.Errorf("get tier: %w", err)
	}

	tier, _ := ParseTier(raw)
	return tier, nil
}

// UpsertTier inserts or updates the tier for a caller.
func (r *Repository) UpsertTier(ctx context.Context, callerID string, tier Tier) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (caller_id, tier)
		 VALUES ($1, $2)
		 ON CONFLICT (caller_id)
		 DO UPDATE SET tier = EXCLUDED.tier, updated_at = NOW()`,
		callerID, string(tier),
	)
	if err != nil {
		return fmt.Errorf("upsert tier: %w", err)
	}
	return nil
}
