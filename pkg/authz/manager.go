package authz

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authzkit/pkg/permissions"
	"github.com/dmitrymomot/authzkit/pkg/roles"
)

// Manager performs the guarded membership mutations the authorization layer
// owns: role changes, custom-permission edits, and archiving. Every operation
// checks the calling actor's permission first and enforces the owner
// invariants — the owner role can never be changed away or archived here, and
// no one can be promoted to owner outside an explicit ownership transfer.
type Manager struct {
	checker *Checker
	store   MembershipStore
}

// NewManager creates a Manager. Panics if a dependency is nil.
func NewManager(checker *Checker, store MembershipStore) *Manager {
	if checker == nil {
		panic("authz: Checker is required")
	}
	if store == nil {
		panic("authz: MembershipStore is required")
	}
	return &Manager{checker: checker, store: store}
}

// Invite creates an active membership for a new member. The owner role is
// never assignable here; ownership exists only through provisioning and
// explicit transfer.
func (m *Manager) Invite(ctx context.Context, callerID, orgID, targetID uuid.UUID, role roles.Role) (*Membership, error) {
	if !m.checker.HasPermission(ctx, callerID, orgID, permissions.MembersInvite) {
		return nil, ErrForbidden
	}

	if role == roles.Owner {
		return nil, ErrOwnerRoleAssignment
	}
	if !m.checker.roles.Valid(role) {
		return nil, fmt.Errorf("%w: %q", roles.ErrUnknownRole, role)
	}

	if existing, err := m.store.Membership(ctx, targetID, orgID); err == nil && existing.IsActive() {
		return nil, ErrMembershipExists
	}

	now := m.checker.now()
	membership := &Membership{
		ActorID:   targetID,
		OrgID:     orgID,
		Role:      role,
		Status:    MembershipActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.SaveMembership(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// UpdateRole changes the target actor's role in the organization.
func (m *Manager) UpdateRole(ctx context.Context, callerID, orgID, targetID uuid.UUID, newRole roles.Role) error {
	target, err := m.guardTarget(ctx, callerID, orgID, targetID)
	if err != nil {
		return err
	}

	if newRole == roles.Owner {
		return ErrOwnerRoleAssignment
	}
	if !m.checker.roles.Valid(newRole) {
		return fmt.Errorf("%w: %q", roles.ErrUnknownRole, newRole)
	}

	target.Role = newRole
	target.UpdatedAt = m.checker.now()
	return m.store.SaveMembership(ctx, target)
}

// UpdateCustomPermissions replaces the target's explicit grant/revoke overrides.
// Panics on unknown permission identifiers, consistent with the checker.
func (m *Manager) UpdateCustomPermissions(ctx context.Context, callerID, orgID, targetID uuid.UUID, grants, revokes []permissions.Permission) error {
	mustValidate(grants)
	mustValidate(revokes)

	target, err := m.guardTarget(ctx, callerID, orgID, targetID)
	if err != nil {
		return err
	}

	target.Grants = grants
	target.Revokes = revokes
	target.UpdatedAt = m.checker.now()
	return m.store.SaveMembership(ctx, target)
}

// Archive deactivates the target's membership.
func (m *Manager) Archive(ctx context.Context, callerID, orgID, targetID uuid.UUID) error {
	target, err := m.guardTarget(ctx, callerID, orgID, targetID)
	if err != nil {
		return err
	}

	target.Status = MembershipArchived
	target.UpdatedAt = m.checker.now()
	return m.store.SaveMembership(ctx, target)
}

// guardTarget verifies the caller may manage members and loads the target
// membership, rejecting any mutation of the owner.
func (m *Manager) guardTarget(ctx context.Context, callerID, orgID, targetID uuid.UUID) (*Membership, error) {
	if !m.checker.HasPermission(ctx, callerID, orgID, permissions.MembersManage) {
		return nil, ErrForbidden
	}

	target, err := m.store.Membership(ctx, targetID, orgID)
	if err != nil {
		return nil, err
	}

	if target.Role == roles.Owner {
		return nil, ErrOwnerImmutable
	}

	return target, nil
}
