package permissions

import "errors"

// ErrUnknownPermission is returned when a permission identifier is not in the catalog.
var ErrUnknownPermission = errors.New("permissions: unknown permission")
