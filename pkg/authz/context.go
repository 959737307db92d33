package authz

import (
	"context"

	"github.com/google/uuid"
)

// Private key types prevent collisions with other context keys.
type actorCtxKey struct{}
type orgCtxKey struct{}

// WithActor stores the authenticated actor ID in the context.
// Set by the upstream authentication step after token verification.
func WithActor(ctx context.Context, actorID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actorID)
}

// ActorFromContext retrieves the authenticated actor ID from the context.
func ActorFromContext(ctx context.Context) (uuid.UUID, bool) {
	actorID, ok := ctx.Value(actorCtxKey{}).(uuid.UUID)
	return actorID, ok
}

// WithOrg stores the organization ID in the context.
func WithOrg(ctx context.Context, orgID uuid.UUID) context.Context {
	return context.WithValue(ctx, orgCtxKey{}, orgID)
}

// OrgFromContext retrieves the organization ID from the context.
func OrgFromContext(ctx context.Context) (uuid.UUID, bool) {
	orgID, ok := ctx.Value(orgCtxKey{}).(uuid.UUID)
	return orgID, ok
}
