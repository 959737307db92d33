package authz

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authzkit/pkg/permissions"
	"github.com/dmitrymomot/authzkit/pkg/roles"
)

// MembershipStatus represents the state of an actor's membership.
type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipArchived MembershipStatus = "archived"
)

// Membership binds an actor to an organization with a role and optional
// custom permission overrides layered on top of the role defaults.
// Exactly one active membership exists per (actor, organization) pair.
type Membership struct {
	ActorID uuid.UUID
	OrgID   uuid.UUID
	Role    roles.Role
	Status  MembershipStatus

	// Grants adds permissions the role does not provide.
	Grants []permissions.Permission
	// Revokes removes permissions the role would provide.
	// A permission listed in both Grants and Revokes stays revoked.
	Revokes []permissions.Permission

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the membership grants any access at all.
func (m *Membership) IsActive() bool {
	return m != nil && m.Status == MembershipActive
}

// Clone returns a deep copy, so callers can hand memberships across
// goroutines without sharing the override slices.
func (m *Membership) Clone() *Membership {
	if m == nil {
		return nil
	}
	clone := *m
	clone.Grants = slices.Clone(m.Grants)
	clone.Revokes = slices.Clone(m.Revokes)
	return &clone
}
