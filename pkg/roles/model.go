package roles

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/authzkit/pkg/permissions"
)

// Model resolves roles to their full permission sets, including inherited ones.
// The resolved map is built once at construction and treated as immutable
// afterwards, so a Model is safe for concurrent use.
type Model struct {
	grants map[Role][]permissions.Permission
	sorted []Role
}

// NewModel builds a Model from role definitions.
// It validates inheritance (circular references, undeclared roles, depth) and
// every referenced permission identifier, then precomputes the effective
// permission set per role for constant-time checks.
func NewModel(defs map[Role]Definition) (*Model, error) {
	if err := validateInheritance(defs); err != nil {
		return nil, err
	}

	grants := make(map[Role][]permissions.Permission, len(defs))
	for role := range defs {
		all := collectPermissions(role, defs, make(map[Role]bool), 0)
		if err := permissions.Validate(all...); err != nil {
			return nil, fmt.Errorf("role %q: %w", role, err)
		}
		slices.Sort(all)
		grants[role] = slices.Compact(all)
	}

	return &Model{
		grants: grants,
		sorted: sortByInheritance(defs),
	}, nil
}

// PermissionsFor returns the full permission set the role grants.
// Returns ErrUnknownRole for roles absent from the model.
func (m *Model) PermissionsFor(role Role) ([]permissions.Permission, error) {
	perms, exists := m.grants[role]
	if !exists {
		return nil, ErrUnknownRole
	}
	return slices.Clone(perms), nil
}

// Grants reports whether the role grants the permission (direct or inherited).
// Unknown roles grant nothing.
func (m *Model) Grants(role Role, perm permissions.Permission) bool {
	perms, exists := m.grants[role]
	if !exists {
		return false
	}
	_, found := slices.BinarySearch(perms, perm)
	return found
}

// Valid reports whether the role exists in the model.
func (m *Model) Valid(role Role) bool {
	_, exists := m.grants[role]
	return exists
}

// Roles returns all role names sorted by inheritance (base roles first).
func (m *Model) Roles() []Role {
	return slices.Clone(m.sorted)
}

// collectPermissions recursively gathers direct and inherited permissions.
func collectPermissions(role Role, defs map[Role]Definition, visited map[Role]bool, depth int) []permissions.Permission {
	if depth > MaxInheritanceDepth || visited[role] {
		return nil
	}
	visited[role] = true

	def, exists := defs[role]
	if !exists {
		return nil
	}

	result := slices.Clone(def.Permissions)
	for _, inherited := range def.Inherits {
		result = append(result, collectPermissions(inherited, defs, visited, depth+1)...)
	}
	return result
}

// sortByInheritance returns role names ordered by inheritance depth, base roles first.
func sortByInheritance(defs map[Role]Definition) []Role {
	depths := make(map[Role]int, len(defs))
	for role := range defs {
		depths[role] = inheritanceDepth(role, defs, make(map[Role]bool))
	}

	result := make([]Role, 0, len(defs))
	for role := range defs {
		result = append(result, role)
	}
	slices.SortFunc(result, func(a, b Role) int {
		if d := depths[a] - depths[b]; d != 0 {
			return d
		}
		// Stable order for roles at the same depth.
		return strings.Compare(string(a), string(b))
	})
	return result
}

// inheritanceDepth computes how many inheritance hops sit below the role.
func inheritanceDepth(role Role, defs map[Role]Definition, inProcess map[Role]bool) int {
	if inProcess[role] {
		return 0
	}
	inProcess[role] = true
	defer delete(inProcess, role)

	def, exists := defs[role]
	if !exists || len(def.Inherits) == 0 {
		return 0
	}

	maxDepth := 0
	for _, inherited := range def.Inherits {
		if d := inheritanceDepth(inherited, defs, inProcess) + 1; d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

// validateInheritance rejects undeclared references, cycles, and excessive depth.
func validateInheritance(defs map[Role]Definition) error {
	for role, def := range defs {
		for _, inherited := range def.Inherits {
			if _, exists := defs[inherited]; !exists {
				return errors.Join(ErrUnknownInheritedRole,
					fmt.Errorf("role %q inherits undeclared role %q", role, inherited))
			}
		}
	}

	for role := range defs {
		if err := checkCycle(role, defs, []Role{role}); err != nil {
			return err
		}
		if inheritanceDepth(role, defs, make(map[Role]bool)) > MaxInheritanceDepth {
			return errors.Join(ErrCircularInheritance,
				fmt.Errorf("inheritance depth of %q exceeds maximum of %d", role, MaxInheritanceDepth))
		}
	}

	return nil
}

// checkCycle performs DFS to detect circular references in role inheritance.
func checkCycle(role Role, defs map[Role]Definition, path []Role) error {
	def, exists := defs[role]
	if !exists {
		return nil
	}

	for _, inherited := range def.Inherits {
		if slices.Contains(path, inherited) {
			return errors.Join(ErrCircularInheritance,
				fmt.Errorf("circular inheritance detected: %s -> %s", role, inherited))
		}
		if err := checkCycle(inherited, defs, append(path, inherited)); err != nil {
			return err
		}
	}
	return nil
}
