// Package guard provides composable authorization guards for HTTP handlers.
//
// A Guard inspects the request context — the authenticated actor and the
// organization are expected to be placed there by upstream middleware — and
// either passes (nil) or returns a structured Denial carrying an HTTP status
// class, a machine-readable code, and enough detail for the client to render
// an actionable prompt (missing permissions, required plan, required roles).
//
// Denial classes:
//
//   - 401 unauthenticated: actor or organization context is missing; always
//     takes precedence over every other check
//   - 403 forbidden: actor is known but lacks the role or permission
//   - 402 payment required: role and permission are fine but the organization
//     has no active subscription
//
// Guards are side-effect free: denying never writes anything, and running the
// same guard twice against the same request yields the same result.
//
// Basic usage:
//
//	canExport := guard.RequirePermission(checker, permissions.LeadsExport)
//
//	r.With(guard.Middleware(canExport)).Get("/export", exportHandler)
//
//	// Or combined with other guards; the first denial short-circuits:
//	g := guard.Combine(
//	    guard.RequireActiveSubscription(checker),
//	    guard.RequireRole(checker, roles.Owner, roles.Admin),
//	)
package guard
