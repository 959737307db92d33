package trial

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authzkit/pkg/authz"
	"github.com/dmitrymomot/authzkit/pkg/plans"
)

// PGSubscriptionStore implements SubscriptionStore backed by Postgres.
//
// Expected schema:
//
//	CREATE TABLE subscriptions (
//	    org_id        UUID PRIMARY KEY,
//	    tier          TEXT NOT NULL,
//	    status        TEXT NOT NULL,
//	    trial_ends_at TIMESTAMPTZ,
//	    created_at    TIMESTAMPTZ NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL,
//	    cancelled_at  TIMESTAMPTZ
//	);
type PGSubscriptionStore struct {
	pool *pgxpool.Pool
}

// NewPGSubscriptionStore creates a Postgres-backed subscription store.
// Panics if pool is nil to fail fast on initialization errors.
func NewPGSubscriptionStore(pool *pgxpool.Pool) *PGSubscriptionStore {
	if pool == nil {
		panic("trial: pgx pool is required")
	}
	return &PGSubscriptionStore{pool: pool}
}

func (s *PGSubscriptionStore) Subscription(ctx context.Context, orgID uuid.UUID) (*authz.Subscription, error) {
	const query = `
		SELECT org_id, tier, status, trial_ends_at, created_at, updated_at, cancelled_at
		FROM subscriptions
		WHERE org_id = $1`

	sub, err := scanSubscription(s.pool.QueryRow(ctx, query, orgID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, authz.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("trial: get subscription: %w", err)
	}
	return sub, nil
}

// BeginTrial performs a single conditional upsert so that concurrent
// activations for the same organization resolve to exactly one winner.
// The update fires only when the existing row is not protected: not
// active, not past due, and not a live trial.
func (s *PGSubscriptionStore) BeginTrial(ctx context.Context, orgID uuid.UUID, tier plans.Tier, now, endsAt time.Time) (*authz.Subscription, bool, error) {
	const upsert = `
		INSERT INTO subscriptions (org_id, tier, status, trial_ends_at, created_at, updated_at, cancelled_at)
		VALUES ($1, $2, 'trialing', $3, $4, $4, NULL)
		ON CONFLICT (org_id) DO UPDATE
		SET tier = EXCLUDED.tier,
		    status = EXCLUDED.status,
		    trial_ends_at = EXCLUDED.trial_ends_at,
		    updated_at = EXCLUDED.updated_at,
		    cancelled_at = NULL
		WHERE subscriptions.status NOT IN ('active', 'past_due')
		  AND (subscriptions.status <> 'trialing' OR subscriptions.trial_ends_at <= $4)
		RETURNING org_id, tier, status, trial_ends_at, created_at, updated_at, cancelled_at`

	sub, err := scanSubscription(s.pool.QueryRow(ctx, upsert, orgID, string(tier), endsAt, now))
	if err == nil {
		return sub, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("trial: begin trial: %w", err)
	}

	// The existing subscription blocked the transition, report it.
	existing, err := s.Subscription(ctx, orgID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func scanSubscription(row pgx.Row) (*authz.Subscription, error) {
	var (
		sub    authz.Subscription
		tier   string
		status string
	)
	err := row.Scan(&sub.OrgID, &tier, &status, &sub.TrialEndsAt, &sub.CreatedAt, &sub.UpdatedAt, &sub.CancelledAt)
	if err != nil {
		return nil, err
	}
	sub.Tier = plans.Tier(tier)
	sub.Status = authz.SubscriptionStatus(status)
	return &sub, nil
}
