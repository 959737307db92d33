package authz

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authzkit/pkg/permissions"
	"github.com/dmitrymomot/authzkit/pkg/plans"
	"github.com/dmitrymomot/authzkit/pkg/roles"
)

// Decision is the full result of a permission check, carrying enough detail
// for callers to render an actionable upgrade or access-request prompt.
type Decision struct {
	Allowed bool

	// Missing lists the checked permissions the actor does not have.
	Missing []permissions.Permission

	// RequiredTier is the minimum plan tier for the first missing permission.
	// Empty when the denial is not recoverable by upgrading (no membership,
	// or the role itself does not grant the permission).
	RequiredTier plans.Tier
}

// Checker resolves effective permissions and plan entitlements.
// It is read-only and safe for concurrent use.
type Checker struct {
	roles         *roles.Model
	memberships   MembershipSource
	subscriptions SubscriptionSource
	now           func() time.Time
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) CheckerOption {
	return func(c *Checker) {
		c.now = now
	}
}

// NewChecker creates a Checker over the given role model and data sources.
// Panics if any dependency is nil to fail fast during initialization.
func NewChecker(model *roles.Model, memberships MembershipSource, subscriptions SubscriptionSource, opts ...CheckerOption) *Checker {
	if model == nil {
		panic("authz: roles.Model is required")
	}
	if memberships == nil {
		panic("authz: MembershipSource is required")
	}
	if subscriptions == nil {
		panic("authz: SubscriptionSource is required")
	}

	c := &Checker{
		roles:         model,
		memberships:   memberships,
		subscriptions: subscriptions,
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RoleOf returns the actor's role in the organization.
// The second return value is false when no active membership exists; every
// permission check is then false as well — the default-deny invariant.
func (c *Checker) RoleOf(ctx context.Context, actorID, orgID uuid.UUID) (roles.Role, bool) {
	membership, err := c.memberships.Membership(ctx, actorID, orgID)
	if err != nil || !membership.IsActive() {
		return "", false
	}
	if !c.roles.Valid(membership.Role) {
		return "", false
	}
	return membership.Role, true
}

// EffectiveTier returns the plan tier the organization is currently entitled
// to. Organizations without a subscription are on the basic tier.
func (c *Checker) EffectiveTier(ctx context.Context, orgID uuid.UUID) plans.Tier {
	sub, err := c.subscriptions.Subscription(ctx, orgID)
	if err != nil {
		return plans.TierBasic
	}
	return sub.EffectiveTierAt(c.now())
}

// HasActiveSubscription reports whether the organization has a subscription
// in good standing: active, or a trial that has not expired.
func (c *Checker) HasActiveSubscription(ctx context.Context, orgID uuid.UUID) bool {
	sub, err := c.subscriptions.Subscription(ctx, orgID)
	if err != nil {
		return false
	}
	return sub.IsActiveAt(c.now())
}

// TrialDaysRemaining returns whole days left in the organization's trial,
// rounded up; 0 when no live trial exists.
func (c *Checker) TrialDaysRemaining(ctx context.Context, orgID uuid.UUID) int {
	sub, err := c.subscriptions.Subscription(ctx, orgID)
	if err != nil {
		return 0
	}
	return sub.TrialDaysRemainingAt(c.now())
}

// HasPermission reports whether the actor holds the permission in the
// organization. Panics on unknown permission identifiers.
func (c *Checker) HasPermission(ctx context.Context, actorID, orgID uuid.UUID, perm permissions.Permission) bool {
	return c.Check(ctx, actorID, orgID, perm).Allowed
}

// HasAllPermissions reports whether the actor holds every listed permission.
func (c *Checker) HasAllPermissions(ctx context.Context, actorID, orgID uuid.UUID, perms ...permissions.Permission) bool {
	return c.Check(ctx, actorID, orgID, perms...).Allowed
}

// HasAnyPermission reports whether the actor holds at least one listed permission.
func (c *Checker) HasAnyPermission(ctx context.Context, actorID, orgID uuid.UUID, perms ...permissions.Permission) bool {
	mustValidate(perms)
	if len(perms) == 0 {
		return true
	}

	membership, ok := c.activeMembership(ctx, actorID, orgID)
	if !ok {
		return false
	}
	tier := c.EffectiveTier(ctx, orgID)

	for _, perm := range perms {
		if c.resolve(membership, tier, perm) {
			return true
		}
	}
	return false
}

// Check evaluates the permissions and returns a detailed Decision.
// All listed permissions must hold for the decision to be allowed.
// Panics on unknown permission identifiers.
func (c *Checker) Check(ctx context.Context, actorID, orgID uuid.UUID, perms ...permissions.Permission) Decision {
	mustValidate(perms)

	decision := Decision{Allowed: true}

	membership, ok := c.activeMembership(ctx, actorID, orgID)
	if !ok {
		if len(perms) == 0 {
			return decision
		}
		return Decision{Missing: slices.Clone(perms)}
	}

	tier := c.EffectiveTier(ctx, orgID)

	for _, perm := range perms {
		if c.resolve(membership, tier, perm) {
			continue
		}

		decision.Allowed = false
		decision.Missing = append(decision.Missing, perm)

		// Report the upgrade path for the first plan-gated miss: the role
		// grants the permission but the plan does not.
		if decision.RequiredTier == "" && c.grantedByMembership(membership, perm) {
			if required, err := permissions.Required(perm); err == nil {
				decision.RequiredTier = required
			}
		}
	}

	return decision
}

// activeMembership loads the actor's membership, treating every source error
// and non-active status as absence.
func (c *Checker) activeMembership(ctx context.Context, actorID, orgID uuid.UUID) (*Membership, bool) {
	membership, err := c.memberships.Membership(ctx, actorID, orgID)
	if err != nil || !membership.IsActive() {
		return nil, false
	}
	return membership, true
}

// grantedByMembership applies role defaults and custom overrides, ignoring plan gating.
func (c *Checker) grantedByMembership(m *Membership, perm permissions.Permission) bool {
	// Explicit overrides win over role defaults; revoke wins over grant.
	if slices.Contains(m.Revokes, perm) {
		return false
	}
	if slices.Contains(m.Grants, perm) {
		return true
	}
	return c.roles.Grants(m.Role, perm)
}

// resolve is the complete permission resolution: membership grant AND plan gate.
func (c *Checker) resolve(m *Membership, tier plans.Tier, perm permissions.Permission) bool {
	if !c.grantedByMembership(m, perm) {
		return false
	}

	required, err := permissions.Required(perm)
	if err != nil {
		return false
	}
	return tier.AtLeast(required)
}

// mustValidate panics on unknown permission identifiers.
// Passing one is a programmer error, not a denied check.
func mustValidate(perms []permissions.Permission) {
	if err := permissions.Validate(perms...); err != nil {
		panic(err)
	}
}
