package authz

import "errors"

var (
	// ErrMembershipNotFound is returned by sources when no membership exists
	// for the (actor, organization) pair. The checker treats it as "no grant".
	ErrMembershipNotFound = errors.New("authz: membership not found")

	// ErrSubscriptionNotFound is returned by sources when the organization has
	// no subscription. The checker treats it as the basic tier.
	ErrSubscriptionNotFound = errors.New("authz: subscription not found")

	// ErrOwnerImmutable is returned when an update would change or archive the
	// organization owner. Ownership moves only through an explicit transfer.
	ErrOwnerImmutable = errors.New("authz: owner membership cannot be modified")

	// ErrOwnerRoleAssignment is returned when an update tries to promote a
	// member to owner outside of an ownership transfer.
	ErrOwnerRoleAssignment = errors.New("authz: owner role cannot be assigned")

	// ErrMembershipExists is returned when an invite targets an actor who
	// already holds an active membership in the organization.
	ErrMembershipExists = errors.New("authz: membership already exists")

	// ErrForbidden is returned by guarded update operations when the calling
	// actor lacks the required permission.
	ErrForbidden = errors.New("authz: forbidden")
)
