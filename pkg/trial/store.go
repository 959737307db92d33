package trial

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authzkit/pkg/authz"
	"github.com/dmitrymomot/authzkit/pkg/plans"
)

// AttemptStore counts activation attempts per key within a fixed window.
// The window starts on the first increment and is never extended by
// subsequent attempts.
type AttemptStore interface {
	// Increment records an attempt and returns the count within the
	// current window together with the window reset time.
	Increment(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
	// Status returns the current count and reset time without
	// recording an attempt. A key with no window returns zero count.
	Status(ctx context.Context, key string) (count int, resetAt time.Time, err error)
	// Reset clears the window for the key.
	Reset(ctx context.Context, key string) error
}

// SubscriptionStore persists subscriptions and supports an atomic
// begin-trial transition.
type SubscriptionStore interface {
	authz.SubscriptionSource

	// BeginTrial atomically creates a trialing subscription for the
	// organization unless a protected subscription already exists.
	// A subscription is protected when it is active, past due, or a
	// trial that has not yet expired. When the transition happens the
	// new subscription is returned with created=true; otherwise the
	// existing subscription is returned with created=false.
	BeginTrial(ctx context.Context, orgID uuid.UUID, tier plans.Tier, now, endsAt time.Time) (sub *authz.Subscription, created bool, err error)
}

// protectedAt reports whether the subscription blocks a new trial.
func protectedAt(sub *authz.Subscription, now time.Time) bool {
	if sub == nil {
		return false
	}
	switch sub.Status {
	case authz.StatusActive, authz.StatusPastDue:
		return true
	case authz.StatusTrialing:
		return !sub.IsTrialExpiredAt(now)
	default:
		return false
	}
}
