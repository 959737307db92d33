// Package permissions defines the static catalog of permission identifiers
// used across the authorization layer.
//
// A permission is a dot-separated capability scope (e.g., "members.read").
// Each permission maps to a minimum subscription plan tier and a human
// description; the description is intended for upgrade prompts shown when a
// role grants a permission that the organization's current plan does not.
//
// The catalog is configuration-as-code: it is populated at package
// initialization and never mutated, so lookups are safe for concurrent use.
//
// Basic usage:
//
//	tier, err := permissions.Required(permissions.CampaignsManage)
//	// tier == plans.TierPro
//
//	if err := permissions.Validate("typo.permission"); err != nil {
//	    // Programmer error: unknown permission identifier
//	}
package permissions
