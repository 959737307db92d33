package authz

import (
	"context"

	"github.com/google/uuid"
)

// MembershipSource supplies membership records to the checker.
// Implementations should return ErrMembershipNotFound when no record exists;
// any error is interpreted as "no grant" by the checker.
type MembershipSource interface {
	Membership(ctx context.Context, actorID, orgID uuid.UUID) (*Membership, error)
}

// SubscriptionSource supplies subscription records to the checker.
// Implementations should return ErrSubscriptionNotFound when the organization
// has none; the checker then falls back to the basic tier.
type SubscriptionSource interface {
	Subscription(ctx context.Context, orgID uuid.UUID) (*Subscription, error)
}

// MembershipStore extends MembershipSource with writes, used by the guarded
// update operations in Manager.
type MembershipStore interface {
	MembershipSource

	// SaveMembership creates or updates a membership keyed by (actor, org).
	SaveMembership(ctx context.Context, membership *Membership) error
}
