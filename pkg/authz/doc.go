// Package authz resolves effective permissions for an actor inside an
// organization, combining role defaults, per-member custom overrides, and the
// organization's subscription plan.
//
// The Checker is read-only and side-effect free: it never mutates memberships
// or subscriptions, and calling it twice with identical inputs always yields
// identical results. Absence of a membership or subscription is interpreted as
// "no grant", never as an error — checks default to deny. Only malformed
// input, such as an unknown permission identifier, is treated as a programmer
// error and panics immediately.
//
// Resolution order for a permission check:
//
//  1. The actor's ACTIVE membership determines the role-derived set.
//  2. Custom overrides on the membership apply on top: an explicit revoke
//     removes a role-granted permission, an explicit grant adds one.
//  3. The organization's effective plan tier must meet the permission's
//     minimum tier. A cancelled or expired-trial subscription counts as the
//     basic tier regardless of any lingering plan field.
//
// Basic usage:
//
//	checker := authz.NewChecker(roles.DefaultModel(), memberships, subscriptions)
//
//	if checker.HasPermission(ctx, actorID, orgID, permissions.LeadsExport) {
//	    // Render the export button
//	}
//
//	decision := checker.Check(ctx, actorID, orgID, permissions.CampaignsManage)
//	if !decision.Allowed && decision.RequiredTier != "" {
//	    // Render an upgrade prompt for decision.RequiredTier
//	}
package authz
