// Package roles maps organization roles to the permission sets they grant.
//
// Roles are declared as configuration-as-code: each role lists its direct
// permissions and the roles it inherits from. Inheritance is resolved once at
// construction, where circular references and unknown permissions are
// rejected, so runtime checks are plain map lookups with no locking.
//
// The default model declares owner ⊇ admin ⊇ member: every role inherits the
// full permission set of the roles below it. This containment is an invariant
// of the declared configuration, verified by tests rather than hand-maintained
// per permission.
//
// Basic usage:
//
//	model, err := roles.NewModel(roles.Defaults())
//	if err != nil {
//	    // Invalid role configuration
//	}
//
//	if model.Grants(roles.Admin, permissions.MembersInvite) {
//	    // Admins can invite
//	}
package roles
