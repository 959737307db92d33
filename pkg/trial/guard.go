package trial

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authzkit/pkg/authz"
)

// Guard mediates trial activations, enforcing both the per-actor attempt
// limit and the per-organization subscription state.
type Guard struct {
	cfg      Config
	attempts AttemptStore
	subs     SubscriptionStore
	now      func() time.Time
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithClock overrides the guard's time source. Intended for tests.
func WithClock(now func() time.Time) GuardOption {
	return func(g *Guard) {
		g.now = now
	}
}

// NewGuard creates a trial activation guard. Returns ErrInvalidConfig when
// the configuration fails validation. Panics if either store is nil to
// fail fast on initialization errors.
func NewGuard(cfg Config, attempts AttemptStore, subs SubscriptionStore, opts ...GuardOption) (*Guard, error) {
	if attempts == nil {
		panic("trial: attempt store is required")
	}
	if subs == nil {
		panic("trial: subscription store is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	g := &Guard{
		cfg:      cfg,
		attempts: attempts,
		subs:     subs,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Activate starts a trial for the organization on behalf of the actor.
//
// Every call consumes one of the actor's attempts, including calls that end
// in a conflict, so repeated probing is bounded. When the limit is exceeded
// a *RateLimitError is returned and the subscription state is untouched.
// When the organization already holds a protected subscription a
// *ConflictError is returned; otherwise a trialing subscription is created
// atomically and described in the returned Activation.
func (g *Guard) Activate(ctx context.Context, actorID, orgID uuid.UUID) (*Activation, error) {
	count, resetAt, err := g.attempts.Increment(ctx, actorID.String(), g.cfg.AttemptWindow)
	if err != nil {
		return nil, fmt.Errorf("trial: count activation attempt: %w", err)
	}
	if count > g.cfg.AttemptLimit {
		return nil, &RateLimitError{ResetAt: resetAt}
	}

	now := g.now()
	endsAt := now.AddDate(0, 0, g.cfg.TrialDays)

	sub, created, err := g.subs.BeginTrial(ctx, orgID, g.cfg.TrialTier, now, endsAt)
	if err != nil {
		return nil, fmt.Errorf("trial: begin trial: %w", err)
	}
	if !created {
		return nil, conflictFor(sub, now)
	}

	return &Activation{
		Status:        StatusTrialing,
		Tier:          g.cfg.TrialTier,
		TrialEndsAt:   endsAt,
		DaysRemaining: g.cfg.TrialDays,
	}, nil
}

// AttemptsRemaining reports how many activation attempts the actor has left
// in the current window, and when the window resets. A zero reset time
// means no window is open.
func (g *Guard) AttemptsRemaining(ctx context.Context, actorID uuid.UUID) (int, time.Time, error) {
	count, resetAt, err := g.attempts.Status(ctx, actorID.String())
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("trial: attempt status: %w", err)
	}
	return max(0, g.cfg.AttemptLimit-count), resetAt, nil
}

func conflictFor(sub *authz.Subscription, now time.Time) *ConflictError {
	switch sub.Status {
	case authz.StatusActive, authz.StatusPastDue:
		return &ConflictError{Code: ConflictActiveSubscription}
	default:
		return &ConflictError{
			Code:          ConflictTrialAlreadyActive,
			DaysRemaining: sub.TrialDaysRemainingAt(now),
		}
	}
}
