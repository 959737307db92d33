package roles

import "github.com/dmitrymomot/authzkit/pkg/permissions"

// MaxInheritanceDepth is the maximum allowed depth of role inheritance
// to prevent excessive nesting and potential performance issues.
const MaxInheritanceDepth = 10

// Role identifies an organization role.
type Role string

// Predefined organization roles.
const (
	Owner  Role = "owner"
	Admin  Role = "admin"
	Member Role = "member"
)

// Definition declares a role's direct permissions and inheritance.
type Definition struct {
	// Permissions directly granted to this role.
	Permissions []permissions.Permission

	// Inherits lists roles whose full permission sets are included.
	Inherits []Role
}
