package plans

import "errors"

var (
	// ErrTierNotFound is returned when a tier has no plan configured.
	ErrTierNotFound = errors.New("plans: tier not found")

	// ErrInvalidConfiguration is returned when loaded plan data is inconsistent.
	ErrInvalidConfiguration = errors.New("plans: invalid plan configuration")

	// ErrFailedToLoadPlans is returned when a Source fails to provide plan data.
	ErrFailedToLoadPlans = errors.New("plans: failed to load plans")
)
