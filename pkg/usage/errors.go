package usage

import "errors"

// ErrUnknownResource is returned when a plan does not configure the resource.
var ErrUnknownResource = errors.New("usage: unknown resource")
