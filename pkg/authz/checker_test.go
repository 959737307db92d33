package authz_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authzkit/pkg/authz"
	"github.com/dmitrymomot/authzkit/pkg/permissions"
	"github.com/dmitrymomot/authzkit/pkg/plans"
	"github.com/dmitrymomot/authzkit/pkg/roles"
)

type fixture struct {
	checker       *authz.Checker
	memberships   *authz.InMemMembershipStore
	subscriptions *authz.InMemSubscriptionSource
	now           time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	memberships := authz.NewInMemMembershipStore()
	subscriptions := authz.NewInMemSubscriptionSource()

	checker := authz.NewChecker(
		roles.DefaultModel(),
		memberships,
		subscriptions,
		authz.WithClock(func() time.Time { return now }),
	)

	return &fixture{
		checker:       checker,
		memberships:   memberships,
		subscriptions: subscriptions,
		now:           now,
	}
}

func (f *fixture) addMember(t *testing.T, orgID uuid.UUID, role roles.Role) uuid.UUID {
	t.Helper()

	actorID := uuid.New()
	require.NoError(t, f.memberships.SaveMembership(context.Background(), &authz.Membership{
		ActorID: actorID,
		OrgID:   orgID,
		Role:    role,
		Status:  authz.MembershipActive,
	}))
	return actorID
}

func (f *fixture) setSubscription(orgID uuid.UUID, tier plans.Tier, status authz.SubscriptionStatus, trialEndsAt *time.Time) {
	f.subscriptions.SetSubscription(&authz.Subscription{
		OrgID:       orgID,
		Tier:        tier,
		Status:      status,
		TrialEndsAt: trialEndsAt,
	})
}

func TestChecker_DefaultDeny(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	orgID := uuid.New()
	stranger := uuid.New()

	f.setSubscription(orgID, plans.TierEnterprise, authz.StatusActive, nil)

	// No membership: every permission is denied, no role resolves.
	for _, perm := range permissions.All() {
		assert.False(t, f.checker.HasPermission(ctx, stranger, orgID, perm))
	}
	_, ok := f.checker.RoleOf(ctx, stranger, orgID)
	assert.False(t, ok)

	// Archived membership is treated the same as no membership.
	archived := uuid.New()
	require.NoError(t, f.memberships.SaveMembership(ctx, &authz.Membership{
		ActorID: archived,
		OrgID:   orgID,
		Role:    roles.Admin,
		Status:  authz.MembershipArchived,
	}))
	assert.False(t, f.checker.HasPermission(ctx, archived, orgID, permissions.LeadsRead))
	_, ok = f.checker.RoleOf(ctx, archived, orgID)
	assert.False(t, ok)
}

func TestChecker_RolePermissions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	orgID := uuid.New()
	f.setSubscription(orgID, plans.TierEnterprise, authz.StatusActive, nil)

	member := f.addMember(t, orgID, roles.Member)
	admin := f.addMember(t, orgID, roles.Admin)
	owner := f.addMember(t, orgID, roles.Owner)

	assert.True(t, f.checker.HasPermission(ctx, member, orgID, permissions.LeadsRead))
	assert.False(t, f.checker.HasPermission(ctx, member, orgID, permissions.MembersInvite))

	assert.True(t, f.checker.HasPermission(ctx, admin, orgID, permissions.MembersInvite))
	assert.False(t, f.checker.HasPermission(ctx, admin, orgID, permissions.BillingManage))

	assert.True(t, f.checker.HasPermission(ctx, owner, orgID, permissions.BillingManage))

	role, ok := f.checker.RoleOf(ctx, admin, orgID)
	require.True(t, ok)
	assert.Equal(t, roles.Admin, role)
}

func TestChecker_CustomOverrides(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	orgID := uuid.New()
	f.setSubscription(orgID, plans.TierEnterprise, authz.StatusActive, nil)

	t.Run("revoke beats role default", func(t *testing.T) {
		t.Parallel()

		actorID := uuid.New()
		require.NoError(t, f.memberships.SaveMembership(ctx, &authz.Membership{
			ActorID: actorID,
			OrgID:   orgID,
			Role:    roles.Admin,
			Status:  authz.MembershipActive,
			Revokes: []permissions.Permission{permissions.MembersInvite},
		}))

		assert.False(t, f.checker.HasPermission(ctx, actorID, orgID, permissions.MembersInvite))
		// Other role permissions stay intact.
		assert.True(t, f.checker.HasPermission(ctx, actorID, orgID, permissions.MembersManage))
	})

	t.Run("grant beats role default", func(t *testing.T) {
		t.Parallel()

		actorID := uuid.New()
		require.NoError(t, f.memberships.SaveMembership(ctx, &authz.Membership{
			ActorID: actorID,
			OrgID:   orgID,
			Role:    roles.Member,
			Status:  authz.MembershipActive,
			Grants:  []permissions.Permission{permissions.LeadsExport},
		}))

		assert.True(t, f.checker.HasPermission(ctx, actorID, orgID, permissions.LeadsExport))
	})

	t.Run("revoke beats grant", func(t *testing.T) {
		t.Parallel()

		actorID := uuid.New()
		require.NoError(t, f.memberships.SaveMembership(ctx, &authz.Membership{
			ActorID: actorID,
			OrgID:   orgID,
			Role:    roles.Member,
			Status:  authz.MembershipActive,
			Grants:  []permissions.Permission{permissions.LeadsExport},
			Revokes: []permissions.Permission{permissions.LeadsExport},
		}))

		assert.False(t, f.checker.HasPermission(ctx, actorID, orgID, permissions.LeadsExport))
	})
}

func TestChecker_PlanGating(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	t.Run("monotonic across tiers", func(t *testing.T) {
		t.Parallel()

		orgID := uuid.New()
		owner := f.addMember(t, orgID, roles.Owner)

		// api.access requires the agency tier.
		allowedAt := map[plans.Tier]bool{
			plans.TierBasic:      false,
			plans.TierPro:        false,
			plans.TierAgency:     true,
			plans.TierEnterprise: true,
		}

		for tier, want := range allowedAt {
			f.setSubscription(orgID, tier, authz.StatusActive, nil)
			assert.Equal(t, want, f.checker.HasPermission(ctx, owner, orgID, permissions.APIAccess),
				"tier %s", tier)
		}
	})

	t.Run("no subscription means basic", func(t *testing.T) {
		t.Parallel()

		orgID := uuid.New()
		owner := f.addMember(t, orgID, roles.Owner)

		assert.Equal(t, plans.TierBasic, f.checker.EffectiveTier(ctx, orgID))
		assert.True(t, f.checker.HasPermission(ctx, owner, orgID, permissions.LeadsRead))
		assert.False(t, f.checker.HasPermission(ctx, owner, orgID, permissions.LeadsExport))
	})

	t.Run("cancelled subscription demotes to basic", func(t *testing.T) {
		t.Parallel()

		orgID := uuid.New()
		owner := f.addMember(t, orgID, roles.Owner)
		f.setSubscription(orgID, plans.TierEnterprise, authz.StatusCancelled, nil)

		assert.Equal(t, plans.TierBasic, f.checker.EffectiveTier(ctx, orgID))
		assert.False(t, f.checker.HasPermission(ctx, owner, orgID, permissions.APIAccess))
	})

	t.Run("expired trial demotes to basic", func(t *testing.T) {
		t.Parallel()

		orgID := uuid.New()
		owner := f.addMember(t, orgID, roles.Owner)
		expired := f.now.Add(-time.Hour)
		f.setSubscription(orgID, plans.TierPro, authz.StatusTrialing, &expired)

		assert.Equal(t, plans.TierBasic, f.checker.EffectiveTier(ctx, orgID))
		assert.False(t, f.checker.HasPermission(ctx, owner, orgID, permissions.LeadsExport))
	})

	t.Run("live trial keeps its tier", func(t *testing.T) {
		t.Parallel()

		orgID := uuid.New()
		owner := f.addMember(t, orgID, roles.Owner)
		ends := f.now.Add(10 * 24 * time.Hour)
		f.setSubscription(orgID, plans.TierPro, authz.StatusTrialing, &ends)

		assert.Equal(t, plans.TierPro, f.checker.EffectiveTier(ctx, orgID))
		assert.True(t, f.checker.HasPermission(ctx, owner, orgID, permissions.LeadsExport))
	})

	t.Run("past due keeps tier for permission checks", func(t *testing.T) {
		t.Parallel()

		orgID := uuid.New()
		f.addMember(t, orgID, roles.Owner)
		f.setSubscription(orgID, plans.TierAgency, authz.StatusPastDue, nil)

		assert.Equal(t, plans.TierAgency, f.checker.EffectiveTier(ctx, orgID))
		assert.False(t, f.checker.HasActiveSubscription(ctx, orgID))
	})
}

func TestChecker_Check_Details(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	orgID := uuid.New()
	admin := f.addMember(t, orgID, roles.Admin)
	// Basic plan: role grants api.access but the plan does not.
	f.setSubscription(orgID, plans.TierBasic, authz.StatusActive, nil)

	decision := f.checker.Check(ctx, admin, orgID, permissions.MembersRead, permissions.APIAccess)
	assert.False(t, decision.Allowed)
	assert.Equal(t, []permissions.Permission{permissions.APIAccess}, decision.Missing)
	assert.Equal(t, plans.TierAgency, decision.RequiredTier)

	// Role-level denial carries no upgrade path.
	member := f.addMember(t, orgID, roles.Member)
	decision = f.checker.Check(ctx, member, orgID, permissions.MembersManage)
	assert.False(t, decision.Allowed)
	assert.Empty(t, decision.RequiredTier)

	// All granted.
	decision = f.checker.Check(ctx, admin, orgID, permissions.MembersRead, permissions.LeadsRead)
	assert.True(t, decision.Allowed)
	assert.Empty(t, decision.Missing)
}

func TestChecker_AllAndAny(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	orgID := uuid.New()
	member := f.addMember(t, orgID, roles.Member)
	f.setSubscription(orgID, plans.TierPro, authz.StatusActive, nil)

	assert.True(t, f.checker.HasAllPermissions(ctx, member, orgID,
		permissions.LeadsRead, permissions.PropertiesRead))
	assert.False(t, f.checker.HasAllPermissions(ctx, member, orgID,
		permissions.LeadsRead, permissions.MembersManage))
	assert.True(t, f.checker.HasAnyPermission(ctx, member, orgID,
		permissions.MembersManage, permissions.LeadsRead))
	assert.False(t, f.checker.HasAnyPermission(ctx, member, orgID,
		permissions.MembersManage, permissions.BillingManage))

	// Empty permission lists pass trivially.
	assert.True(t, f.checker.HasAllPermissions(ctx, member, orgID))
	assert.True(t, f.checker.HasAnyPermission(ctx, member, orgID))
}

func TestChecker_UnknownPermissionPanics(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		f.checker.HasPermission(ctx, uuid.New(), uuid.New(), "no.such.permission")
	})
}

func TestChecker_HasActiveSubscription(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		status      authz.SubscriptionStatus
		trialEndsAt *time.Time
		want        bool
	}{
		{"active", authz.StatusActive, nil, true},
		{"live trial", authz.StatusTrialing, ptr(f.now.Add(24 * time.Hour)), true},
		{"expired trial", authz.StatusTrialing, ptr(f.now.Add(-time.Minute)), false},
		{"past due", authz.StatusPastDue, nil, false},
		{"cancelled", authz.StatusCancelled, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			orgID := uuid.New()
			f.setSubscription(orgID, plans.TierPro, tt.status, tt.trialEndsAt)
			assert.Equal(t, tt.want, f.checker.HasActiveSubscription(ctx, orgID))
		})
	}

	t.Run("no subscription", func(t *testing.T) {
		t.Parallel()
		assert.False(t, f.checker.HasActiveSubscription(ctx, uuid.New()))
	})
}

// Checks are side-effect free: repeating the same check yields the same
// result and leaves stored records untouched.
func TestChecker_Idempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	orgID := uuid.New()
	admin := f.addMember(t, orgID, roles.Admin)
	f.setSubscription(orgID, plans.TierPro, authz.StatusActive, nil)

	first := f.checker.Check(ctx, admin, orgID, permissions.MembersInvite)
	for range 10 {
		assert.Equal(t, first, f.checker.Check(ctx, admin, orgID, permissions.MembersInvite))
	}

	stored, err := f.memberships.Membership(ctx, admin, orgID)
	require.NoError(t, err)
	assert.Equal(t, roles.Admin, stored.Role)
	assert.Equal(t, authz.MembershipActive, stored.Status)
}

func ptr[T any](v T) *T { return &v }
