package roles

import "errors"

var (
	// ErrUnknownRole is returned when a role does not exist in the model.
	ErrUnknownRole = errors.New("roles: unknown role")

	// ErrCircularInheritance is returned when role definitions inherit from each other.
	ErrCircularInheritance = errors.New("roles: circular inheritance")

	// ErrUnknownInheritedRole is returned when a role inherits from an undeclared role.
	ErrUnknownInheritedRole = errors.New("roles: inherited role not declared")
)
