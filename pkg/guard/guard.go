package guard

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authzkit/pkg/authz"
	"github.com/dmitrymomot/authzkit/pkg/permissions"
	"github.com/dmitrymomot/authzkit/pkg/roles"
)

// Guard evaluates a request context and returns nil to pass or a Denial to
// short-circuit. Guards must be free of side effects on denial.
type Guard func(ctx context.Context) *Denial

// RequirePermission denies with 403 unless the actor holds every listed
// permission in the organization. The denial details include the missing
// permissions and, when an upgrade would help, the minimum required plan.
func RequirePermission(checker *authz.Checker, perms ...permissions.Permission) Guard {
	return func(ctx context.Context) *Denial {
		actorID, orgID, denial := identities(ctx)
		if denial != nil {
			return denial
		}

		decision := checker.Check(ctx, actorID, orgID, perms...)
		if decision.Allowed {
			return nil
		}

		details := map[string]any{
			"missing_permissions": decision.Missing,
		}
		if len(decision.Missing) > 0 {
			details["description"] = permissions.Describe(decision.Missing[0])
			// Always report the plan floor of the first missing permission,
			// even when the denial is role-based rather than plan-based.
			if tier, err := permissions.Required(decision.Missing[0]); err == nil {
				details["required_plan"] = tier
			}
		}

		return forbidden(CodeInsufficientPermissions, "missing required permissions", details)
	}
}

// RequireAnyPermission denies with 403 unless the actor holds at least one of
// the listed permissions.
func RequireAnyPermission(checker *authz.Checker, perms ...permissions.Permission) Guard {
	return func(ctx context.Context) *Denial {
		actorID, orgID, denial := identities(ctx)
		if denial != nil {
			return denial
		}

		if checker.HasAnyPermission(ctx, actorID, orgID, perms...) {
			return nil
		}

		return forbidden(CodeInsufficientPermissions, "missing required permissions", map[string]any{
			"any_of": perms,
		})
	}
}

// RequireRole denies with 403 unless the actor's role is in the allowed set.
// The denial details report the required versus actual role.
func RequireRole(checker *authz.Checker, allowed ...roles.Role) Guard {
	return func(ctx context.Context) *Denial {
		actorID, orgID, denial := identities(ctx)
		if denial != nil {
			return denial
		}

		role, ok := checker.RoleOf(ctx, actorID, orgID)
		if ok && slices.Contains(allowed, role) {
			return nil
		}

		details := map[string]any{
			"required_roles": allowed,
		}
		if ok {
			details["actual_role"] = role
		}

		return forbidden(CodeInsufficientRole, "role not permitted", details)
	}
}

// RequireActiveSubscription denies with 402 — a distinct payment-required
// class, not 403 — unless the organization has an active subscription or a
// live trial.
func RequireActiveSubscription(checker *authz.Checker) Guard {
	return func(ctx context.Context) *Denial {
		_, orgID, denial := identities(ctx)
		if denial != nil {
			return denial
		}

		if checker.HasActiveSubscription(ctx, orgID) {
			return nil
		}

		return paymentRequired("an active subscription is required")
	}
}

// Combine runs guards in order. The first denial short-circuits and is
// returned unchanged; nil means every guard passed.
func Combine(guards ...Guard) Guard {
	return func(ctx context.Context) *Denial {
		for _, g := range guards {
			if denial := g(ctx); denial != nil {
				return denial
			}
		}
		return nil
	}
}

// identities extracts the actor and organization from the context.
// A missing identity is a 401, which takes precedence over all other checks.
func identities(ctx context.Context) (actorID, orgID uuid.UUID, denial *Denial) {
	actorID, ok := authz.ActorFromContext(ctx)
	if !ok {
		return uuid.UUID{}, uuid.UUID{}, unauthenticated("no authenticated actor")
	}

	orgID, ok = authz.OrgFromContext(ctx)
	if !ok {
		return uuid.UUID{}, uuid.UUID{}, unauthenticated("no organization context")
	}

	return actorID, orgID, nil
}
